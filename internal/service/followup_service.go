package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/model/dto"
	"github.com/relatify/relatify_go_server/internal/pkg/ai"
	"github.com/relatify/relatify_go_server/internal/repository"
)

// ErrEmptyQuestion 与生成客户端共用同一哨兵
var ErrEmptyQuestion = ai.ErrEmptyQuestion

type FollowUpService struct {
	followUpRepo    *repository.FollowUpRepository
	explanationRepo *repository.ExplanationRepository
	interestRepo    *repository.InterestRepository
	progressSvc     *ProgressService
	generator       ai.Generator
}

func NewFollowUpService(
	followUpRepo *repository.FollowUpRepository,
	explanationRepo *repository.ExplanationRepository,
	interestRepo *repository.InterestRepository,
	progressSvc *ProgressService,
	generator ai.Generator,
) *FollowUpService {
	return &FollowUpService{
		followUpRepo:    followUpRepo,
		explanationRepo: explanationRepo,
		interestRepo:    interestRepo,
		progressSvc:     progressSvc,
		generator:       generator,
	}
}

// Ask 回答追问并落库
func (s *FollowUpService) Ask(ctx context.Context, userID int64, req *dto.AnswerFollowUpRequest) (*dto.AnswerFollowUpResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	// 带讲解 ID 时校验归属，并用其主题补全上下文
	contextText := strings.TrimSpace(req.Context)
	var explanationID *int64
	if req.ExplanationID != nil {
		explanation, err := s.explanationRepo.GetByID(*req.ExplanationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrExplanationNotFound
			}
			return nil, err
		}
		if explanation.UserID != userID {
			return nil, ErrExplanationNotFound
		}
		explanationID = &explanation.ID
		if contextText == "" {
			contextText = explanation.Topic
		}
	}

	interests := req.Interests
	if len(interests) == 0 {
		var err error
		interests, err = s.interestRepo.ListByUser(userID)
		if err != nil {
			return nil, err
		}
	}

	answer, err := s.generator.AnswerFollowUp(ctx, question, contextText, interests)
	if err != nil {
		return nil, err
	}

	followUp := &model.FollowUp{
		UserID:        userID,
		ExplanationID: explanationID,
		Question:      question,
		Answer:        answer,
	}
	if err := s.followUpRepo.Create(followUp); err != nil {
		return nil, err
	}

	// 追问计数用于好奇徽章
	if total, err := s.followUpRepo.CountByUser(userID); err != nil {
		log.Printf("统计追问数失败 user=%d: %v", userID, err)
	} else {
		s.progressSvc.RecordFollowUp(ctx, userID, total)
	}

	return &dto.AnswerFollowUpResponse{
		FollowUpID: followUp.ID,
		Answer:     answer,
	}, nil
}

// ListByExplanation 返回某条讲解下的追问历史
func (s *FollowUpService) ListByExplanation(explanationID, userID int64) ([]dto.FollowUpItem, error) {
	followUps, err := s.followUpRepo.ListByExplanation(explanationID, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FollowUpItem, 0, len(followUps))
	for _, f := range followUps {
		items = append(items, dto.FollowUpItem{
			ID:            f.ID,
			ExplanationID: f.ExplanationID,
			Question:      f.Question,
			Answer:        f.Answer,
			CreatedAt:     f.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}
