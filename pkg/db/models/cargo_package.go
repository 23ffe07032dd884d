package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CargoPackage is a packaging line item owned by an ops file. Replacing the
// packaging set discards the previous rows, so package ids are not stable
// across updates.
type CargoPackage struct {
	PackageID int64            `gorm:"column:package_id;primaryKey;autoIncrement"`
	OpID      uuid.UUID        `gorm:"column:op_id;type:uuid;not null"`
	Quantity  *decimal.Decimal `gorm:"column:quantity;type:numeric"`
	Units     string           `gorm:"column:units;not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (CargoPackage) TableName() string { return "ops.op_file_packages" }
