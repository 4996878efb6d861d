package database

import "context"

func (s *store) CreateMill(ctx context.Context, mill *Mill) error {
	return translate(s.conn(ctx).Create(mill).Error)
}

func (s *store) GetMill(ctx context.Context, id uint) (*Mill, error) {
	var mill Mill
	if err := s.conn(ctx).Where("id = ?", id).First(&mill).Error; err != nil {
		return nil, translate(err)
	}
	return &mill, nil
}

func (s *store) GetMillByUserID(ctx context.Context, userID uint) (*Mill, error) {
	var mill Mill
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&mill).Error; err != nil {
		return nil, translate(err)
	}
	return &mill, nil
}

func (s *store) ListMills(ctx context.Context, page Page) ([]*Mill, error) {
	var mills []*Mill
	if err := page.apply(s.conn(ctx).Order("id")).Find(&mills).Error; err != nil {
		return nil, err
	}
	return mills, nil
}

func (s *store) UpdateMill(ctx context.Context, id uint, updates map[string]any) (*Mill, error) {
	if len(updates) > 0 {
		res := s.conn(ctx).Model(&Mill{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetMill(ctx, id)
}

// DeleteMill removes a mill that has no orders; otherwise it is deactivated
// instead so order history stays intact.
func (s *store) DeleteMill(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetMill(ctx, id); err != nil {
			return err
		}
		var orders int64
		if err := s.conn(ctx).Model(&FeedOrder{}).Where("mill_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return s.conn(ctx).Model(&Mill{}).Where("id = ?", id).Update("is_active", false).Error
		}
		return s.conn(ctx).Where("id = ?", id).Delete(&Mill{}).Error
	})
}

func (s *store) CreateFeedType(ctx context.Context, feedType *FeedType) error {
	return translate(s.conn(ctx).Create(feedType).Error)
}

func (s *store) ListFeedTypes(ctx context.Context, availableOnly bool) ([]*FeedType, error) {
	q := s.conn(ctx).Order("id")
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	var types []*FeedType
	if err := q.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}
