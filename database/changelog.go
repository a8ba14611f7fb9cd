package database

import (
	"fmt"
	"reflect"
	"time"

	"github.com/yeremiapane/restaurant-diary/models"
	"github.com/yeremiapane/restaurant-diary/utils"
	"gorm.io/gorm"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// RegisterChangeLog installs gorm callbacks that append a models.DBChange row
// for every write to the watched tables, inside the same transaction. It
// replaces database triggers so the change feed works on every dialect.
func RegisterChangeLog(db *gorm.DB, tables ...string) error {
	watched := make(map[string]bool, len(tables))
	for _, t := range tables {
		watched[t] = true
	}

	hooks := []struct {
		name     string
		register func(name string, fn func(*gorm.DB)) error
		action   string
	}{
		{"changelog:create", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Create().After("gorm:create").Register(n, fn)
		}, ActionInsert},
		{"changelog:update", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Update().After("gorm:update").Register(n, fn)
		}, ActionUpdate},
		{"changelog:delete", func(n string, fn func(*gorm.DB)) error {
			return db.Callback().Delete().After("gorm:delete").Register(n, fn)
		}, ActionDelete},
	}

	for _, h := range hooks {
		if err := h.register(h.name, recorder(watched, h.action)); err != nil {
			return fmt.Errorf("register %s: %w", h.name, err)
		}
	}
	utils.InfoLogger.Printf("Change log watching tables: %v", tables)
	return nil
}

func recorder(watched map[string]bool, action string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.Statement.Schema == nil || tx.RowsAffected == 0 {
			return
		}
		table := tx.Statement.Schema.Table
		if !watched[table] {
			return
		}

		for _, rv := range records(tx.Statement.ReflectValue) {
			id, scope := recordKey(tx, rv)
			if id == "" {
				continue
			}
			change := models.DBChange{
				TableName:  table,
				RecordID:   id,
				Scope:      scope,
				ActionType: action,
				ChangedAt:  time.Now(),
			}
			if err := tx.Session(&gorm.Session{NewDB: true}).Create(&change).Error; err != nil {
				utils.ErrorLogger.Errorf("Error recording %s on %s/%s: %v", action, table, id, err)
			}
		}
	}
}

func records(rv reflect.Value) []reflect.Value {
	rv = reflect.Indirect(rv)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]reflect.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, reflect.Indirect(rv.Index(i)))
		}
		return out
	case reflect.Struct:
		return []reflect.Value{rv}
	}
	return nil
}

// recordKey returns the primary key and, for bookings, the booking date.
func recordKey(tx *gorm.DB, rv reflect.Value) (string, string) {
	schema := tx.Statement.Schema
	pk := schema.PrioritizedPrimaryField
	if pk == nil || rv.Kind() != reflect.Struct {
		return "", ""
	}
	v, zero := pk.ValueOf(tx.Statement.Context, rv)
	if zero {
		return "", ""
	}

	scope := ""
	if f := schema.LookUpField("Date"); f != nil {
		if d, isZero := f.ValueOf(tx.Statement.Context, rv); !isZero {
			scope = fmt.Sprint(d)
		}
	}
	return fmt.Sprint(v), scope
}
