package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/relatify/relatify_go_server/internal/model"
)

// stripFences 去掉模型输出两侧可能存在的 markdown 代码围栏
func stripFences(content string) string {
	clean := strings.ReplaceAll(content, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	return strings.TrimSpace(clean)
}

// ParseExplanation 解析并校验生成的讲解内容
// 任何不符合八段式结构契约的结果都返回 ErrMalformedResponse
func ParseExplanation(content string) (*model.ExplanationData, error) {
	clean := stripFences(content)

	var data model.ExplanationData
	if err := json.Unmarshal([]byte(clean), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := validateExplanation(&data); err != nil {
		return nil, err
	}

	return &data, nil
}

func validateExplanation(d *model.ExplanationData) error {
	if d.Simple == "" {
		return fmt.Errorf("%w: missing simple", ErrMalformedResponse)
	}
	if d.Analogy == "" {
		return fmt.Errorf("%w: missing analogy", ErrMalformedResponse)
	}
	if n := len(d.StepByStep); n < 4 || n > 5 {
		return fmt.Errorf("%w: stepByStep has %d entries", ErrMalformedResponse, n)
	}
	if d.VisualModel == "" {
		return fmt.Errorf("%w: missing visualModel", ErrMalformedResponse)
	}
	if d.DeeperDive == "" {
		return fmt.Errorf("%w: missing deeperDive", ErrMalformedResponse)
	}
	if n := len(d.RealWorld); n < 3 || n > 4 {
		return fmt.Errorf("%w: realWorld has %d entries", ErrMalformedResponse, n)
	}
	if n := len(d.PracticeQuestions); n != 3 {
		return fmt.Errorf("%w: practiceQuestions has %d entries", ErrMalformedResponse, n)
	}
	if n := len(d.Quiz); n != 3 {
		return fmt.Errorf("%w: quiz has %d entries", ErrMalformedResponse, n)
	}
	for i, q := range d.Quiz {
		if q.Question == "" {
			return fmt.Errorf("%w: quiz[%d] missing question", ErrMalformedResponse, i)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("%w: quiz[%d] has %d options", ErrMalformedResponse, i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return fmt.Errorf("%w: quiz[%d] correctAnswer out of range", ErrMalformedResponse, i)
		}
	}
	return nil
}
