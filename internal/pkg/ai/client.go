package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/relatify/relatify_go_server/config"
	"github.com/relatify/relatify_go_server/internal/model"
)

var (
	ErrEmptyTopic        = errors.New("主题不能为空")
	ErrEmptyQuestion     = errors.New("问题不能为空")
	ErrUpstream          = errors.New("生成服务调用失败")
	ErrMalformedResponse = errors.New("生成结果解析失败")
)

// Generator 内容生成接口
type Generator interface {
	GenerateExplanation(ctx context.Context, topic string, interests []string) (*model.ExplanationData, error)
	AnswerFollowUp(ctx context.Context, question, contextText string, interests []string) (*model.FollowUpAnswer, error)
}

// Client chat-completion 客户端，模型与温度固定，不对调用方开放
type Client struct {
	cfg    *config.AIConfig
	client *http.Client
}

func NewClient(cfg *config.AIConfig) *Client {
	timeout := 60 * time.Second
	if cfg.TimeoutSecs > 0 {
		timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chat 调用上游 chat-completion 接口，返回首个 choice 的正文
func (c *Client) chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.Printf("AI upstream error: %s - %s", resp.Status, string(bodyBytes))
		return "", fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", nil
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GenerateExplanation 生成八段式个性化讲解
func (c *Client) GenerateExplanation(ctx context.Context, topic string, interests []string) (*model.ExplanationData, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	content, err := c.chat(ctx,
		"You are a brilliant educator who creates personalized, engaging explanations. Always respond with valid JSON only, no markdown formatting.",
		buildExplanationPrompt(topic, joinInterests(interests)),
	)
	if err != nil {
		return nil, err
	}

	data, err := ParseExplanation(content)
	if err != nil {
		log.Printf("AI malformed explanation, content: %s", content)
		return nil, err
	}

	return data, nil
}

// AnswerFollowUp 回答追问，返回对话式纯文本
func (c *Client) AnswerFollowUp(ctx context.Context, question, contextText string, interests []string) (*model.FollowUpAnswer, error) {
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	content, err := c.chat(ctx,
		"You are an encouraging tutor who loves helping curious learners understand complex topics.",
		buildFollowUpPrompt(question, contextText, joinInterests(interests)),
	)
	if err != nil {
		return nil, err
	}

	// 空回答不视为失败
	return &model.FollowUpAnswer{Content: content}, nil
}
