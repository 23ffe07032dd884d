package models

// Country is the geodata lookup referenced by partners and ops files.
type Country struct {
	CountryID int    `gorm:"column:country_id;primaryKey"`
	Name      string `gorm:"column:name;not null;uniqueIndex"`
	ISO2Code  string `gorm:"column:iso2_code;not null;uniqueIndex"`
	ISO3Code  string `gorm:"column:iso3_code;not null;uniqueIndex"`
}

func (Country) TableName() string { return "geodata.countries" }
