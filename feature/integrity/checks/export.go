package checks

import (
	"fmt"
	"reflect"
	"strings"

	"order-features/core/database"
	"order-features/feature/orders/models"

	"gorm.io/gorm"
)

// ExportReport describes the export table against the TrainingRow model.
type ExportReport struct {
	Table          string   `json:"table"`
	Exists         bool     `json:"exists"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
}

// CheckExportTable verifies the database table the db sink writes to, using
// the gorm tags of models.TrainingRow as the expected schema.
func CheckExportTable(db *gorm.DB, table string) (*ExportReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	actual, err := database.GetTableColumns(db, table)
	if err != nil {
		return nil, err
	}

	expected := ModelColumns(models.TrainingRow{})
	missing, err := database.MissingColumns(db, table, expected)
	if err != nil {
		return nil, err
	}
	if missing == nil {
		missing = []string{}
	}

	return &ExportReport{
		Table:          table,
		Exists:         len(actual) > 0,
		Matched:        len(actual) > 0 && len(missing) == 0,
		MissingColumns: missing,
	}, nil
}

// ModelColumns returns the gorm column names declared on a struct model.
func ModelColumns(model interface{}) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var cols []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
