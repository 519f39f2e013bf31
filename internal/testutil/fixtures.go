package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Username:      fmt.Sprintf("testuser_%d", time.Now().UnixNano()%100000),
		Email:         &email,
		PasswordHash:  &passwordHash,
		EmailVerified: true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithGithubID 设置 GitHub 绑定
func WithGithubID(githubID string) func(*model.User) {
	return func(u *model.User) {
		u.GithubID = &githubID
	}
}

// WithUnverified 设置为未验证邮箱
func WithUnverified(code string) func(*model.User) {
	return func(u *model.User) {
		u.EmailVerified = false
		u.VerificationCode = &code
		expires := time.Now().Add(24 * time.Hour)
		u.VerificationExpiresAt = &expires
	}
}

// SampleExplanationData 构造一份满足结构约束的讲解内容
func SampleExplanationData(topic string) *model.ExplanationData {
	return &model.ExplanationData{
		Simple:      fmt.Sprintf("%s is a concept explained simply.", topic),
		Analogy:     "It is like a familiar everyday thing.",
		StepByStep:  []string{"First step", "Second step", "Third step", "Fourth step"},
		VisualModel: "Picture a diagram with boxes and arrows.",
		DeeperDive:  "At a deeper level there is more nuance.",
		RealWorld:   []string{"Used in engineering", "Used in science", "Used in daily life"},
		PracticeQuestions: []string{
			"What is the core idea?",
			"How would you apply it?",
			"What happens at the edge cases?",
		},
		Quiz: []model.QuizQuestion{
			{Question: "Q1?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 0},
			{Question: "Q2?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 1},
			{Question: "Q3?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: 2},
		},
	}
}

// TestExplanation 创建测试讲解
func TestExplanation(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Explanation)) *model.Explanation {
	t.Helper()

	topic := fmt.Sprintf("Topic %d", time.Now().UnixNano()%100000)
	explanation := &model.Explanation{
		UserID:          userID,
		Topic:           topic,
		ExplanationData: SampleExplanationData(topic),
	}

	for _, opt := range opts {
		opt(explanation)
	}

	if err := db.Create(explanation).Error; err != nil {
		t.Fatalf("Failed to create test explanation: %v", err)
	}

	return explanation
}

// WithTopic 设置讲解主题
func WithTopic(topic string) func(*model.Explanation) {
	return func(e *model.Explanation) {
		e.Topic = topic
		e.ExplanationData = SampleExplanationData(topic)
	}
}

// WithCreatedAt 设置创建时间
func WithCreatedAt(at time.Time) func(*model.Explanation) {
	return func(e *model.Explanation) {
		e.CreatedAt = at
	}
}

// TestFollowUp 创建测试追问
func TestFollowUp(t *testing.T, db *gorm.DB, userID int64, explanationID *int64, question string) *model.FollowUp {
	t.Helper()

	followUp := &model.FollowUp{
		UserID:        userID,
		ExplanationID: explanationID,
		Question:      question,
		Answer:        &model.FollowUpAnswer{Content: "An encouraging answer."},
	}

	if err := db.Create(followUp).Error; err != nil {
		t.Fatalf("Failed to create test follow-up: %v", err)
	}

	return followUp
}

// TestProgress 创建测试进度行
func TestProgress(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Progress)) *model.Progress {
	t.Helper()

	progress := &model.Progress{
		UserID: userID,
	}

	for _, opt := range opts {
		opt(progress)
	}

	if err := db.Create(progress).Error; err != nil {
		t.Fatalf("Failed to create test progress: %v", err)
	}

	return progress
}

// WithStreak 设置连续天数与最近活跃日
func WithStreak(current, longest int, lastActivity time.Time) func(*model.Progress) {
	return func(p *model.Progress) {
		p.CurrentStreak = current
		p.LongestStreak = longest
		p.LastActivityDate = &lastActivity
	}
}

// WithTotals 设置累计讲解数与星数
func WithTotals(explanations, stars int) func(*model.Progress) {
	return func(p *model.Progress) {
		p.TotalExplanations = explanations
		p.TotalStars = stars
	}
}

// TestBadge 创建测试徽章
func TestBadge(t *testing.T, db *gorm.DB, userID int64, badgeType model.BadgeType) *model.Badge {
	t.Helper()

	badge := &model.Badge{
		UserID:    userID,
		BadgeType: badgeType,
		EarnedAt:  time.Now(),
	}

	if err := db.Create(badge).Error; err != nil {
		t.Fatalf("Failed to create test badge: %v", err)
	}

	return badge
}

// TestInterests 写入用户兴趣与学习风格
func TestInterests(t *testing.T, db *gorm.DB, userID int64, interests []string, style string) {
	t.Helper()

	for _, interest := range interests {
		row := model.Interest{UserID: userID, Interest: interest}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("Failed to create test interest: %v", err)
		}
	}
	if style != "" {
		row := model.LearningStyle{UserID: userID, Style: style}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("Failed to create test learning style: %v", err)
		}
	}
}

// TestScan 创建测试扫描记录
func TestScan(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Scan)) *model.Scan {
	t.Helper()

	scan := &model.Scan{
		UserID:   userID,
		ImageURL: "https://cdn.example.com/scans/1/test.jpg",
	}

	for _, opt := range opts {
		opt(scan)
	}

	if err := db.Create(scan).Error; err != nil {
		t.Fatalf("Failed to create test scan: %v", err)
	}

	return scan
}

// WithProcessed 标记扫描已提交文本
func WithProcessed(text string) func(*model.Scan) {
	return func(s *model.Scan) {
		s.Processed = true
		s.ExtractedText = &text
	}
}

// WithScanCreatedAt 设置扫描创建时间
func WithScanCreatedAt(at time.Time) func(*model.Scan) {
	return func(s *model.Scan) {
		s.CreatedAt = at
	}
}
