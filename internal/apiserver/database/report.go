package database

import (
	"context"
	"time"
)

// CreateReport stores a new draft report with any inline cost details.
// A duplicate report number surfaces as ErrConflict.
func (s *store) CreateReport(ctx context.Context, report *ProductionReport) error {
	report.Approved = false
	report.ApprovedBy = nil
	report.ApprovedAt = nil
	return translate(s.conn(ctx).Create(report).Error)
}

func (s *store) ListReports(ctx context.Context, filter ReportFilter) ([]*ProductionReport, error) {
	q := s.conn(ctx)
	if filter.FarmerID != nil {
		q = q.Where("farmer_id = ?", *filter.FarmerID)
	}
	if filter.Approved != nil {
		q = q.Where("is_approved = ?", *filter.Approved)
	}
	q = filter.DateRange.apply(q, "hatch_date")
	if filter.WithCost {
		q = q.Preload("CostDetails")
	}

	var reports []*ProductionReport
	if err := filter.Page.apply(q.Order("created_at desc, id desc")).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *store) GetReport(ctx context.Context, id uint) (*ProductionReport, error) {
	var report ProductionReport
	if err := s.conn(ctx).Preload("CostDetails").Where("id = ?", id).First(&report).Error; err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

func (s *store) GetFarmerReport(ctx context.Context, id, farmerID uint) (*ProductionReport, error) {
	var report ProductionReport
	err := s.conn(ctx).Preload("CostDetails").
		Where("id = ? AND farmer_id = ?", id, farmerID).
		First(&report).Error
	if err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

// UpdateReport edits a draft owned by the farmer
func (s *store) UpdateReport(ctx context.Context, id, farmerID uint, updates map[string]any) (*ProductionReport, error) {
	values := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	if _, ok := values["updated_at"]; !ok {
		values["updated_at"] = time.Now()
	}

	var report *ProductionReport
	err := s.Transaction(ctx, func(ctx context.Context) error {
		res := s.conn(ctx).Model(&ProductionReport{}).
			Where("id = ? AND farmer_id = ? AND is_approved = ?", id, farmerID, false).
			Updates(values)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return s.reportMiss(ctx, id, &farmerID, ErrReportLocked)
		}
		var err error
		report, err = s.GetFarmerReport(ctx, id, farmerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// DeleteReport removes a draft owned by the farmer and its cost details
func (s *store) DeleteReport(ctx context.Context, id, farmerID uint) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		db := s.conn(ctx)
		drafts := db.Model(&ProductionReport{}).Select("id").
			Where("id = ? AND farmer_id = ? AND is_approved = ?", id, farmerID, false)
		if err := db.Where("production_report_id IN (?)", drafts).Delete(&CostDetail{}).Error; err != nil {
			return err
		}

		res := db.Where("id = ? AND farmer_id = ? AND is_approved = ?", id, farmerID, false).Delete(&ProductionReport{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.reportMiss(ctx, id, &farmerID, ErrReportLocked)
		}
		return nil
	})
}

// ApproveReport moves a draft to approved and stamps the approver
func (s *store) ApproveReport(ctx context.Context, id, adminID uint, at time.Time) (*ProductionReport, error) {
	return s.transition(ctx, id, false, map[string]any{
		"is_approved": true,
		"approved_by": adminID,
		"approved_at": at,
	}, ErrAlreadyApproved)
}

// RejectReport returns an approved report to draft
func (s *store) RejectReport(ctx context.Context, id uint) (*ProductionReport, error) {
	return s.transition(ctx, id, true, map[string]any{
		"is_approved": false,
		"approved_by": nil,
		"approved_at": nil,
	}, ErrNotApproved)
}

// transition applies values only while the approval flag still equals from.
// When no row changes the report is re-read to tell a missing report from
// one in the wrong state.
func (s *store) transition(ctx context.Context, id uint, from bool, values map[string]any, wrongState error) (*ProductionReport, error) {
	var report *ProductionReport
	err := s.Transaction(ctx, func(ctx context.Context) error {
		res := s.conn(ctx).Model(&ProductionReport{}).
			Where("id = ? AND is_approved = ?", id, from).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.reportMiss(ctx, id, nil, wrongState)
		}
		var err error
		report, err = s.GetReport(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *store) reportMiss(ctx context.Context, id uint, farmerID *uint, wrongState error) error {
	q := s.conn(ctx).Model(&ProductionReport{}).Where("id = ?", id)
	if farmerID != nil {
		q = q.Where("farmer_id = ?", *farmerID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return wrongState
}

// AddCostDetail appends a cost line to a draft owned by the farmer. The
// parent row is touched first so a concurrent approval waits on its lock.
func (s *store) AddCostDetail(ctx context.Context, farmerID uint, detail *CostDetail) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		res := s.conn(ctx).Model(&ProductionReport{}).
			Where("id = ? AND farmer_id = ? AND is_approved = ?", detail.ProductionReportID, farmerID, false).
			Update("updated_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.reportMiss(ctx, detail.ProductionReportID, &farmerID, ErrReportLocked)
		}
		return translate(s.conn(ctx).Create(detail).Error)
	})
}

func (s *store) ListCostDetails(ctx context.Context, reportID, farmerID uint) ([]*CostDetail, error) {
	if _, err := s.GetFarmerReport(ctx, reportID, farmerID); err != nil {
		return nil, err
	}
	var details []*CostDetail
	if err := s.conn(ctx).Where("production_report_id = ?", reportID).Order("id").Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}
