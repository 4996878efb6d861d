package database

import (
	"context"

	"gorm.io/gorm"
)

func (s *store) CreateFarmer(ctx context.Context, farmer *Farmer) error {
	return translate(s.conn(ctx).Omit("User", "Farms").Create(farmer).Error)
}

// CreateFarmerWithUser creates the account and its farmer profile together
func (s *store) CreateFarmerWithUser(ctx context.Context, user *User, farmer *Farmer) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.CreateUser(ctx, user); err != nil {
			return err
		}
		farmer.UserID = user.ID
		return s.CreateFarmer(ctx, farmer)
	})
}

func (s *store) GetFarmer(ctx context.Context, id uint) (*Farmer, error) {
	var farmer Farmer
	if err := s.conn(ctx).Preload("Farms").Where("id = ?", id).First(&farmer).Error; err != nil {
		return nil, translate(err)
	}
	return &farmer, nil
}

func (s *store) GetFarmerByUserID(ctx context.Context, userID uint) (*Farmer, error) {
	var farmer Farmer
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&farmer).Error; err != nil {
		return nil, translate(err)
	}
	return &farmer, nil
}

func (s *store) farmerSummaries(ctx context.Context) *gorm.DB {
	return s.conn(ctx).
		Model(&Farmer{}).
		Select("farmers.*, users.email AS user_email, users.full_name AS user_full_name, " +
			"users.is_active AS user_is_active, " +
			"(SELECT COUNT(*) FROM farms WHERE farms.farmer_id = farmers.id) AS farm_count").
		Joins("JOIN users ON users.id = farmers.user_id")
}

func (s *store) GetFarmerSummary(ctx context.Context, id uint) (*FarmerSummary, error) {
	var rows []*FarmerSummary
	if err := s.farmerSummaries(ctx).Where("farmers.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (s *store) ListFarmers(ctx context.Context, filter FarmerFilter) ([]*FarmerSummary, error) {
	q := s.farmerSummaries(ctx)
	if filter.Search != "" {
		p := likePattern(filter.Search)
		q = q.Where("LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ? OR farmers.phone LIKE ?", p, p, p)
	}
	if filter.FarmType != "" {
		q = q.Where("LOWER(farmers.farm_type) LIKE ?", likePattern(filter.FarmType))
	}
	if filter.Verified != nil {
		q = q.Where("farmers.is_verified = ?", *filter.Verified)
	}

	var rows []*FarmerSummary
	if err := filter.Page.apply(q.Order("farmers.id")).Scan(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *store) UpdateFarmer(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		_, err := s.GetFarmer(ctx, id)
		return err
	}
	res := s.conn(ctx).Model(&Farmer{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFarmer removes the profile with everything it owns and, when asked,
// the account behind it.
func (s *store) DeleteFarmer(ctx context.Context, id uint, deleteUser bool) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		farmer, err := s.getFarmerByID(ctx, id)
		if err != nil {
			return err
		}

		db := s.conn(ctx)
		reports := db.Model(&ProductionReport{}).Select("id").Where("farmer_id = ?", id)
		orders := db.Model(&FeedOrder{}).Select("id").Where("farmer_id = ?", id)
		steps := []func() error{
			func() error { return db.Where("farmer_id = ?", id).Delete(&MortalityRecord{}).Error },
			func() error { return db.Where("farmer_id = ?", id).Delete(&RoutineData{}).Error },
			func() error { return db.Where("production_report_id IN (?)", reports).Delete(&CostDetail{}).Error },
			func() error { return db.Where("farmer_id = ?", id).Delete(&ProductionReport{}).Error },
			func() error { return db.Where("order_id IN (?)", orders).Delete(&FeedOrderItem{}).Error },
			func() error { return db.Where("farmer_id = ?", id).Delete(&FeedOrder{}).Error },
			func() error { return db.Where("farmer_id = ?", id).Delete(&Farm{}).Error },
			func() error { return db.Where("id = ?", id).Delete(&Farmer{}).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return translate(err)
			}
		}

		if deleteUser {
			return s.DeleteUser(ctx, farmer.UserID)
		}
		return nil
	})
}

// getFarmerByID loads the bare profile without relations
func (s *store) getFarmerByID(ctx context.Context, id uint) (*Farmer, error) {
	var farmer Farmer
	if err := s.conn(ctx).Where("id = ?", id).First(&farmer).Error; err != nil {
		return nil, translate(err)
	}
	return &farmer, nil
}

func (s *store) CountFarmers(ctx context.Context) (*FarmerCounts, error) {
	counts := &FarmerCounts{FarmTypeDistribution: map[string]int64{}}
	db := s.conn(ctx)

	if err := db.Model(&Farmer{}).Count(&counts.TotalFarmers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&Farmer{}).Where("is_verified = ?", true).Count(&counts.VerifiedFarmers).Error; err != nil {
		return nil, err
	}
	err := db.Model(&Farmer{}).
		Joins("JOIN users ON users.id = farmers.user_id").
		Where("users.is_active = ?", true).
		Count(&counts.ActiveUsers).Error
	if err != nil {
		return nil, err
	}

	var groups []struct {
		FarmType string
		Count    int64
	}
	if err := db.Model(&Farmer{}).Select("farm_type, COUNT(*) AS count").Group("farm_type").Scan(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		counts.FarmTypeDistribution[g.FarmType] = g.Count
	}

	counts.UnverifiedFarmers = counts.TotalFarmers - counts.VerifiedFarmers
	counts.InactiveUsers = counts.TotalFarmers - counts.ActiveUsers
	counts.VerificationRate = percent(counts.VerifiedFarmers, counts.TotalFarmers)
	return counts, nil
}

func (s *store) SearchFarmers(ctx context.Context, query string, limit int) ([]*FarmerSearchResult, error) {
	p := likePattern(query)
	var rows []*FarmerSearchResult
	err := s.conn(ctx).
		Model(&Farmer{}).
		Select("farmers.id, users.full_name, users.email, farmers.phone, farmers.farm_type, farmers.is_verified").
		Joins("JOIN users ON users.id = farmers.user_id").
		Where("LOWER(users.full_name) LIKE ? OR LOWER(users.email) LIKE ? OR farmers.phone LIKE ?", p, p, p).
		Order("farmers.id").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *store) BulkVerifyFarmers(ctx context.Context, ids []uint, verified bool) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyIDs
	}

	var matched int64
	err := s.Transaction(ctx, func(ctx context.Context) error {
		res := s.conn(ctx).Model(&Farmer{}).Where("id IN ?", ids).Update("is_verified", verified)
		if res.Error != nil {
			return res.Error
		}
		matched = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}
	return matched, nil
}

func (s *store) CreateFarm(ctx context.Context, farm *Farm) error {
	return translate(s.conn(ctx).Create(farm).Error)
}

func (s *store) ListFarms(ctx context.Context, farmerID uint) ([]*Farm, error) {
	var farms []*Farm
	if err := s.conn(ctx).Where("farmer_id = ?", farmerID).Order("id").Find(&farms).Error; err != nil {
		return nil, err
	}
	return farms, nil
}

func (s *store) GetFarm(ctx context.Context, id, farmerID uint) (*Farm, error) {
	var farm Farm
	if err := s.conn(ctx).Where("id = ? AND farmer_id = ?", id, farmerID).First(&farm).Error; err != nil {
		return nil, translate(err)
	}
	return &farm, nil
}

func (s *store) UpdateFarm(ctx context.Context, id, farmerID uint, updates map[string]any) (*Farm, error) {
	if len(updates) > 0 {
		res := s.conn(ctx).Model(&Farm{}).Where("id = ? AND farmer_id = ?", id, farmerID).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetFarm(ctx, id, farmerID)
}

// DeleteFarm removes the farm together with its routine log
func (s *store) DeleteFarm(ctx context.Context, id, farmerID uint) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetFarm(ctx, id, farmerID); err != nil {
			return err
		}
		db := s.conn(ctx)
		routines := db.Model(&RoutineData{}).Select("id").Where("farm_id = ?", id)
		if err := db.Where("routine_data_id IN (?)", routines).Delete(&MortalityRecord{}).Error; err != nil {
			return err
		}
		if err := db.Where("farm_id = ?", id).Delete(&RoutineData{}).Error; err != nil {
			return err
		}
		return db.Where("id = ?", id).Delete(&Farm{}).Error
	})
}
