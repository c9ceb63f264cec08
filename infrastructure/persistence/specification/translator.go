package specification

import (
	"strings"

	"shop/domain/order"
	"shop/domain/shared"

	"gorm.io/gorm"
)

// Scope GORM query modifier
type Scope = func(*gorm.DB) *gorm.DB

// likeEscape escape character for LIKE patterns, accepted by MySQL and SQLite alike
const likeEscape = "!"

// GormTranslator turns order specifications into GORM scopes.
// Scopes expect the orders table joined with members.
type GormTranslator struct {
	dialect string
}

// NewGormTranslator dialect is the GORM dialector name ("mysql", "sqlite")
func NewGormTranslator(dialect string) *GormTranslator {
	return &GormTranslator{dialect: dialect}
}

// Translate returns nil if spec, or any part of a conjunction, has no SQL form
func (t *GormTranslator) Translate(spec shared.Specification[*order.Order]) Scope {
	if spec == nil {
		return nil
	}

	switch s := spec.(type) {
	case shared.AndSpecification[*order.Order]:
		return t.translateAnd(s)
	case order.ByStatusSpecification:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("orders.status = ?", string(s.Status))
		}
	case order.ByMemberNameSpecification:
		return t.translateMemberName(s)
	}
	return nil
}

func (t *GormTranslator) translateAnd(spec shared.AndSpecification[*order.Order]) Scope {
	scopes := make([]Scope, 0, len(spec.Specs))
	for _, inner := range spec.Specs {
		scope := t.Translate(inner)
		if scope == nil {
			return nil
		}
		scopes = append(scopes, scope)
	}
	return func(db *gorm.DB) *gorm.DB {
		for _, scope := range scopes {
			db = scope(db)
		}
		return db
	}
}

func (t *GormTranslator) translateMemberName(spec order.ByMemberNameSpecification) Scope {
	if spec.Match == order.NameMatchCaseInsensitive {
		pattern := "%" + EscapeLike(strings.ToLower(spec.Name)) + "%"
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(members.name) LIKE ? ESCAPE '"+likeEscape+"'", pattern)
		}
	}

	if t.dialect == "sqlite" {
		// SQLite LIKE ignores ASCII case
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("INSTR(members.name, ?) > 0", spec.Name)
		}
	}
	pattern := "%" + EscapeLike(spec.Name) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("members.name COLLATE utf8mb4_bin LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	}
}

// EscapeLike makes LIKE wildcards in s match literally
func EscapeLike(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(s)
}
