package service

import (
	"testing"

	"secondplan/database/model"

	"github.com/stretchr/testify/assert"
)

func TestMerchandiseCrud(t *testing.T) {
	setup(t)

	service := MerchandiseService{}
	item := &model.Merchandise{
		Name:  "Tour T-Shirt",
		Sku:   "TS-2026",
		Price: 25,
		Stock: 100,
	}
	assert.NoError(t, service.CreateItem(item))

	item.Stock = 80
	assert.NoError(t, service.UpdateItem(item.Id, item))

	stored, err := service.GetItem(item.Id)
	assert.NoError(t, err)
	assert.Equal(t, 80, stored.Stock)

	matched, err := service.GetItems("TS-")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)

	stats, err := service.Stats()
	assert.NoError(t, err)
	assert.EqualValues(t, 1, stats["total"])
	assert.EqualValues(t, 80, stats["stock"])

	assert.NoError(t, service.DeleteItem(item.Id))
	_, err = service.GetItem(item.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMerchandiseValidation(t *testing.T) {
	setup(t)

	service := MerchandiseService{}
	err := service.CreateItem(&model.Merchandise{Price: -1, Stock: -1})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Message, "Name is required.")
	assert.Contains(t, vErr.Message, "SKU is required.")
	assert.Contains(t, vErr.Message, "Price must be zero or more.")
	assert.Contains(t, vErr.Message, "Stock must be zero or more.")
}
