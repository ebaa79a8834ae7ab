package domain

// Settings is the global configuration record: the rate table and the
// template library.
type Settings struct {
	JobTypes  []JobType  `json:"jobTypes"`
	Templates []Template `json:"templates"`
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := Settings{
		JobTypes:  append([]JobType(nil), s.JobTypes...),
		Templates: make([]Template, 0, len(s.Templates)),
	}
	for _, t := range s.Templates {
		out.Templates = append(out.Templates, t.Clone())
	}
	return out
}

// DefaultSettings returns the built-in rate table and seed template.
// Each call builds a new value.
func DefaultSettings() Settings {
	return Settings{
		JobTypes: []JobType{
			{ID: "1", Name: "プロジェクトマネージャー", MonthlyRate: 1200000},
			{ID: "2", Name: "システムエンジニア", MonthlyRate: 900000},
			{ID: "3", Name: "プログラマー", MonthlyRate: 700000},
			{ID: "4", Name: "テスター", MonthlyRate: 600000},
		},
		Templates: []Template{
			{
				ID:   "1",
				Name: "標準Webアプリケーション開発",
				WorkItems: []TemplateItem{
					{Name: "要件定義", JobTypeID: "1", ManMonths: 0.5},
					{Name: "基本設計", JobTypeID: "2", ManMonths: 1.0},
					{Name: "詳細設計", JobTypeID: "2", ManMonths: 1.5},
					{Name: "開発", JobTypeID: "3", ManMonths: 3.0},
					{Name: "単体テスト", JobTypeID: "3", ManMonths: 1.0},
					{Name: "結合テスト", JobTypeID: "4", ManMonths: 1.0},
					{Name: "システムテスト", JobTypeID: "4", ManMonths: 0.5},
				},
			},
		},
	}
}
