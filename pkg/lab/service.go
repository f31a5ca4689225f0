package lab

import (
	"context"

	"github.com/labchat/labchat-server/pkg/model"
)

func NewService(repository *repository) *Service {
	return &Service{
		repository: repository,
	}
}

type Service struct {
	repository *repository
}

func (s Service) FindAll(ctx context.Context) ([]*model.Lab, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Lab, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) FindMembers(ctx context.Context, id uint) ([]model.Member, error) {
	return s.repository.findMembers(ctx, id)
}
