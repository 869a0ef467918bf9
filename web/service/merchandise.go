package service

import (
	"strings"

	"secondplan/database"
	"secondplan/database/model"
)

type MerchandiseService struct{}

func (s *MerchandiseService) GetItems(query string) ([]model.Merchandise, error) {
	db := database.GetDB()
	q := db.Model(model.Merchandise{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	var items []model.Merchandise
	err := q.Order("id desc").Find(&items).Error
	return items, err
}

func (s *MerchandiseService) GetItem(id int) (*model.Merchandise, error) {
	db := database.GetDB()
	var item model.Merchandise
	err := db.First(&item, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *MerchandiseService) validate(item *model.Merchandise) error {
	var problems []string
	if strings.TrimSpace(item.Name) == "" {
		problems = append(problems, "Name is required.")
	}
	if strings.TrimSpace(item.Sku) == "" {
		problems = append(problems, "SKU is required.")
	}
	if item.Price < 0 {
		problems = append(problems, "Price must be zero or more.")
	}
	if item.Stock < 0 {
		problems = append(problems, "Stock must be zero or more.")
	}
	if len(problems) > 0 {
		return newValidationError(strings.Join(problems, " "), problems...)
	}
	return nil
}

func (s *MerchandiseService) CreateItem(item *model.Merchandise) error {
	if err := s.validate(item); err != nil {
		return err
	}
	return database.GetDB().Create(item).Error
}

func (s *MerchandiseService) UpdateItem(id int, item *model.Merchandise) error {
	if err := s.validate(item); err != nil {
		return err
	}
	db := database.GetDB()
	updates := map[string]any{
		"name":        item.Name,
		"sku":         item.Sku,
		"price":       item.Price,
		"stock":       item.Stock,
		"description": item.Description,
	}
	if item.ImagePath != "" {
		updates["image_path"] = item.ImagePath
	}
	result := db.Model(model.Merchandise{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MerchandiseService) DeleteItem(id int) error {
	db := database.GetDB()
	result := db.Delete(&model.Merchandise{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MerchandiseService) Stats() (map[string]any, error) {
	db := database.GetDB()

	var total int64
	if err := db.Model(model.Merchandise{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var stock int64
	err := db.Model(model.Merchandise{}).Select("COALESCE(SUM(stock), 0)").Scan(&stock).Error
	if err != nil {
		return nil, err
	}

	var outOfStock int64
	if err := db.Model(model.Merchandise{}).Where("stock = 0").Count(&outOfStock).Error; err != nil {
		return nil, err
	}

	return map[string]any{
		"total":      total,
		"stock":      stock,
		"outOfStock": outOfStock,
	}, nil
}
