package services

import "match-list-service/models"

// Observation 单个字段组的原始变更观察
//
// Previous/Current 保存原始值供下游程序消费，Description 由检测器
// 在物化明细时统一生成。
type Observation struct {
	Category  models.ChangeCategory
	FieldName string
	Previous  interface{}
	Current   interface{}
}

// FieldAnalyzer 字段分析器
//
// 每个分析器只负责一个语义字段组，独立判断该字段组是否变化。
// 检测器按固定顺序遍历分析器列表，多个分析器可以对同一场比赛
// 同时命中，各自产生独立的变更明细。
type FieldAnalyzer interface {
	Name() string
	Analyze(prev, curr *models.Match) []Observation
}

// defaultAnalyzers 检测器使用的分析器列表，顺序固定
func defaultAnalyzers() []FieldAnalyzer {
	return []FieldAnalyzer{
		&RefereeAnalyzer{},
		&DateAnalyzer{},
		&TimeAnalyzer{},
		&VenueAnalyzer{},
		&TeamAnalyzer{},
		&CompetitionAnalyzer{},
		&StatusAnalyzer{},
	}
}
