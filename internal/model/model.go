package model

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Author{},
		&Category{},
		&Book{},
		&Member{},
		&Loan{},
	}
}
