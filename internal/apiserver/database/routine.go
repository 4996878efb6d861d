package database

import "context"

// CreateRoutine stores a day's log for one of the farmer's farms. A second
// entry for the same farm and date is a conflict.
func (s *store) CreateRoutine(ctx context.Context, routine *RoutineData) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetFarm(ctx, routine.FarmID, routine.FarmerID); err != nil {
			return err
		}
		return translate(s.conn(ctx).Omit("MortalityRecords").Create(routine).Error)
	})
}

func (s *store) ListRoutines(ctx context.Context, filter RoutineFilter) ([]*RoutineData, error) {
	q := s.conn(ctx).Where("farmer_id = ?", filter.FarmerID)
	if filter.FarmID != nil {
		q = q.Where("farm_id = ?", *filter.FarmID)
	}
	q = filter.DateRange.apply(q, "date")

	var routines []*RoutineData
	if err := filter.Page.apply(q.Order("date desc, id desc")).Find(&routines).Error; err != nil {
		return nil, err
	}
	return routines, nil
}

func (s *store) GetRoutine(ctx context.Context, id, farmerID uint) (*RoutineData, error) {
	var routine RoutineData
	err := s.conn(ctx).Preload("MortalityRecords").
		Where("id = ? AND farmer_id = ?", id, farmerID).
		First(&routine).Error
	if err != nil {
		return nil, translate(err)
	}
	return &routine, nil
}

func (s *store) UpdateRoutine(ctx context.Context, id, farmerID uint, updates map[string]any) (*RoutineData, error) {
	if len(updates) > 0 {
		res := s.conn(ctx).Model(&RoutineData{}).Where("id = ? AND farmer_id = ?", id, farmerID).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetRoutine(ctx, id, farmerID)
}

// DeleteRoutine removes the entry and its mortality records. The removed
// entry is returned with its records preloaded.
func (s *store) DeleteRoutine(ctx context.Context, id, farmerID uint) (*RoutineData, error) {
	var routine *RoutineData
	err := s.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if routine, err = s.GetRoutine(ctx, id, farmerID); err != nil {
			return err
		}
		if err := s.conn(ctx).Where("routine_data_id = ?", id).Delete(&MortalityRecord{}).Error; err != nil {
			return err
		}
		return s.conn(ctx).Where("id = ?", id).Delete(&RoutineData{}).Error
	})
	if err != nil {
		return nil, err
	}
	return routine, nil
}

// CreateMortality stores a record against one of the farmer's routine entries
func (s *store) CreateMortality(ctx context.Context, record *MortalityRecord) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetRoutine(ctx, record.RoutineDataID, record.FarmerID); err != nil {
			return err
		}
		return translate(s.conn(ctx).Create(record).Error)
	})
}

func (s *store) ListMortality(ctx context.Context, farmerID uint, routineID *uint) ([]*MortalityRecord, error) {
	q := s.conn(ctx).Where("farmer_id = ?", farmerID)
	if routineID != nil {
		q = q.Where("routine_data_id = ?", *routineID)
	}
	var records []*MortalityRecord
	if err := q.Order("created_at desc, id desc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *store) getMortality(ctx context.Context, id, farmerID uint) (*MortalityRecord, error) {
	var record MortalityRecord
	if err := s.conn(ctx).Where("id = ? AND farmer_id = ?", id, farmerID).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *store) UpdateMortality(ctx context.Context, id, farmerID uint, updates map[string]any) (*MortalityRecord, error) {
	if len(updates) > 0 {
		res := s.conn(ctx).Model(&MortalityRecord{}).Where("id = ? AND farmer_id = ?", id, farmerID).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.getMortality(ctx, id, farmerID)
}

// DeleteMortality removes one record and returns it
func (s *store) DeleteMortality(ctx context.Context, id, farmerID uint) (*MortalityRecord, error) {
	var record *MortalityRecord
	err := s.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if record, err = s.getMortality(ctx, id, farmerID); err != nil {
			return err
		}
		return s.conn(ctx).Where("id = ?", id).Delete(&MortalityRecord{}).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
