package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Category    string         `json:"category" binding:"required"`
	Description string         `json:"description"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	OldPrice    float64        `json:"oldPrice"`
	Image       string         `json:"image"`
	Stock       int            `json:"stock"`
	Ingredients datatypes.JSON `json:"ingredients"`
}
