package analysis

import "gorm.io/gorm"

type AnalysisContainer struct {
	Repo    AnalysisRepository
	Service AnalysisService
	Handler *Handler
}

func NewAnalysisContainer(db *gorm.DB, provider Provider, users UserLookup, questions QuestionCatalog, answers AnswerLister) *AnalysisContainer {
	repo := NewRepository(db)
	service := NewService(repo, provider, users, questions, answers)
	handler := NewHandler(service)

	return &AnalysisContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
