package customization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvstudio/pkg/cv"
)

type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockRepository echoes the customization it is asked to store.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c Customization) (Customization, error) {
	args := m.Called(ctx, c)
	return c, args.Error(0)
}

func (m *MockRepository) ListSuggestions(ctx context.Context, cvID uuid.UUID, limit, offset int) ([]Suggestion, error) {
	args := m.Called(ctx, cvID, limit, offset)
	return args.Get(0).([]Suggestion), args.Error(1)
}

func (m *MockRepository) GetSuggestion(ctx context.Context, cvID, id uuid.UUID) (Suggestion, error) {
	args := m.Called(ctx, cvID, id)
	return args.Get(0).(Suggestion), args.Error(1)
}

func (m *MockRepository) MarkApplied(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// fakeCVs keeps a single CV in memory and runs mutations against it.
type fakeCVs struct {
	cv.UseCase
	stored  cv.CV
	err     error
	mutated int
}

func (f *fakeCVs) Get(_ context.Context, _ uuid.UUID, _ bool, id uuid.UUID) (cv.CV, error) {
	if f.err != nil {
		return cv.CV{}, f.err
	}
	if id != f.stored.ID {
		return cv.CV{}, cv.ErrNotFound
	}
	return f.stored.Projection(), nil
}

func (f *fakeCVs) Mutate(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, fn cv.MutateFunc) (cv.CV, bool, error) {
	c, err := f.Get(ctx, actorID, isAdmin, id)
	if err != nil {
		return cv.CV{}, false, err
	}
	next, changed, err := fn(c, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || !changed {
		return c, changed, err
	}
	f.mutated++
	f.stored = next
	return next.Projection(), true, nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newCustomizationService(repo *MockRepository, cvs *fakeCVs, model *MockChatModel) *service {
	var gen *LLMGenerator
	if model != nil {
		gen = NewLLMGenerator(model)
	} else {
		gen = NewLLMGenerator(nil)
	}
	return &service{repo: repo, cvs: cvs, generator: gen, enhancer: gen, now: func() time.Time { return fixedNow }}
}

func sampleCV() cv.CV {
	return cv.CV{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		FullName:       "Jane Doe",
		ProfileSummary: "Backend engineer",
		Experiences: []cv.Experience{
			{Role: "Engineer", Company: "Acme", StartDate: "2020-01", Description: "Built Docker pipelines"},
		},
		CurrentVersion: 3,
	}
}

func titles(items []Suggestion) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Title)
	}
	return out
}

func TestRuleSuggestions(t *testing.T) {
	t.Run("empty cv", func(t *testing.T) {
		in := Input{
			CV:             cv.CV{Experiences: []cv.Experience{{Role: "Dev"}}},
			JobDescription: "AWS certified engineer",
			Missing:        []string{"aws", "kubernetes"},
			Score:          10,
		}
		got := ruleSuggestions(in)

		assert.Equal(t, []string{
			"Address Skills Gap",
			"Add a Profile Summary",
			"Add Achievement Bullet Points",
			"Add a Professional Photo",
			"Boost Your ATS Keyword Score",
			"Add Relevant Certifications",
		}, titles(got))
		for _, s := range got {
			assert.Equal(t, SourceRules, s.Source)
			assert.True(t, cv.ValidSection(s.Section), s.Section)
		}
		assert.Contains(t, got[0].Text, "aws, kubernetes")
	})

	t.Run("complete cv with a good score", func(t *testing.T) {
		c := sampleCV()
		c.PhotoPath = "/uploads/photos/me.png"
		got := ruleSuggestions(Input{CV: c, JobDescription: "Go developer", Score: 80})

		assert.Empty(t, got)
	})
}

func TestLLMGeneratorWithoutModelUsesRules(t *testing.T) {
	in := Input{CV: sampleCV(), Missing: []string{"kafka"}, Score: 90}

	got, err := NewLLMGenerator(nil).Suggest(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, titles(ruleSuggestions(in)), titles(got))
}

func TestLLMGeneratorFallsBackOnModelError(t *testing.T) {
	model := new(MockChatModel)
	model.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("timeout")).Once()
	in := Input{CV: sampleCV(), Missing: []string{"kafka"}, Score: 90}

	got, err := NewLLMGenerator(model).Suggest(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, titles(ruleSuggestions(in)), titles(got))
	model.AssertExpectations(t)
}

func TestLLMGeneratorAddsRuleExtras(t *testing.T) {
	model := new(MockChatModel)
	model.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return(
		"```json\n[{\"title\":\"Mention Kafka\",\"description\":\"Kafka is required\",\"suggestion\":\"Add Kafka to skills\",\"section\":\"skills\"},"+
			"{\"title\":\"Odd\",\"description\":\"d\",\"suggestion\":\"s\",\"section\":\"hobbies\"},"+
			"{\"title\":\"\",\"description\":\"dropped\",\"suggestion\":\"x\",\"section\":\"skills\"}]\n```", nil).Once()
	c := sampleCV()
	c.ProfileSummary = ""
	in := Input{CV: c, Missing: []string{"kafka"}, Score: 20}

	got, err := NewLLMGenerator(model).Suggest(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "Mention Kafka", got[0].Title)
	assert.Equal(t, SourceAI, got[0].Source)
	assert.Equal(t, cv.SectionGeneral, got[1].Section)
	// skills and general are covered, so the first two uncovered rules follow
	assert.Equal(t, []string{"Add a Profile Summary", "Add a Professional Photo"}, titles(got[2:]))
	assert.Equal(t, SourceRules, got[2].Source)
}

func TestLLMGeneratorExperienceSuggestionCarriesData(t *testing.T) {
	model := new(MockChatModel)
	model.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return(
		`[{"title":"Quantify impact","description":"Numbers help","suggestion":"Add metrics","section":"experience"}]`, nil).Once()
	model.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return("• Cut build time by 40%\n• Led Docker migration", nil).Once()

	got, err := NewLLMGenerator(model).Suggest(context.Background(), Input{CV: sampleCV(), Score: 90})

	require.NoError(t, err)
	require.NotEmpty(t, got)
	require.NotNil(t, got[0].Data)
	var e cv.Experience
	require.NoError(t, json.Unmarshal(got[0].Data, &e))
	assert.Equal(t, "Engineer", e.Role)
	assert.Equal(t, "Acme", e.Company)
	assert.Equal(t, "• Cut build time by 40%\n• Led Docker migration", e.Description)
}

func TestIsGerman(t *testing.T) {
	assert.True(t, isGerman("Berufserfahrung als Softwareentwickler, Kenntnisse in Go"))
	assert.False(t, isGerman("Erfahrung"))
	assert.False(t, isGerman("Senior backend engineer with Go experience"))
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("Sure! ```json\n{\"a\":1}\n``` hope it helps", '{', '}'))
	assert.Equal(t, `[1,2]`, extractJSON("result: [1,2].", '[', ']'))
	assert.Equal(t, "no json", extractJSON("no json", '{', '}'))
}

func TestCustomizeRejectsEmptyJobDescription(t *testing.T) {
	svc := newCustomizationService(new(MockRepository), &fakeCVs{}, nil)

	_, err := svc.Customize(context.Background(), uuid.New(), false, uuid.New(), "   ")

	assert.ErrorIs(t, err, ErrEmptyJobDescription)
}

func TestCustomizePersistsAndCapsKeywords(t *testing.T) {
	c := sampleCV()
	cvs := &fakeCVs{stored: c}
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("customization.Customization")).Return(nil).Once()
	svc := newCustomizationService(repo, cvs, nil)

	words := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		words = append(words, fmt.Sprintf("term%02d", i))
	}
	jd := "Docker " + strings.Join(words, " ")

	got, err := svc.Customize(context.Background(), c.OwnerID, false, c.ID, jd)

	require.NoError(t, err)
	assert.Len(t, got.MissingKeywords, maxKeywordsInResponse)
	assert.Equal(t, []string{"docker"}, got.MatchedKeywords)
	assert.Equal(t, 3, got.Score)
	assert.False(t, got.AIPowered)
	assert.Equal(t, fixedNow, got.CreatedAt)
	require.NotEmpty(t, got.Suggestions)
	for _, s := range got.Suggestions {
		assert.NotEqual(t, uuid.Nil, s.ID)
		assert.Equal(t, c.ID, s.CVID)
		assert.Equal(t, got.ID, s.CustomizationID)
		assert.False(t, s.Applied)
	}

	stored := repo.Calls[0].Arguments.Get(1).(Customization)
	assert.Len(t, stored.MissingKeywords, 30)
	repo.AssertExpectations(t)
}

func TestCustomizeMarksAIPowered(t *testing.T) {
	c := sampleCV()
	model := new(MockChatModel)
	model.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return(
		`[{"title":"Mention Go","description":"Go is key","suggestion":"Add Go","section":"skills"}]`, nil).Once()
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	svc := newCustomizationService(repo, &fakeCVs{stored: c}, model)

	got, err := svc.Customize(context.Background(), c.OwnerID, false, c.ID, "Go developer")

	require.NoError(t, err)
	assert.True(t, got.AIPowered)
	assert.Equal(t, SourceAI, got.Suggestions[0].Source)
}

func TestCustomizeUnknownCV(t *testing.T) {
	svc := newCustomizationService(new(MockRepository), &fakeCVs{stored: sampleCV()}, nil)

	_, err := svc.Customize(context.Background(), uuid.New(), false, uuid.New(), "Go developer")

	assert.ErrorIs(t, err, cv.ErrNotFound)
}

func TestListSuggestionsChecksAccess(t *testing.T) {
	repo := new(MockRepository)
	svc := newCustomizationService(repo, &fakeCVs{err: cv.ErrNotFound}, nil)

	_, err := svc.ListSuggestions(context.Background(), uuid.New(), false, uuid.New(), 20, 0)

	assert.ErrorIs(t, err, cv.ErrNotFound)
	repo.AssertNotCalled(t, "ListSuggestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplySuggestionMergesSkills(t *testing.T) {
	c := sampleCV()
	require.NoError(t, json.Unmarshal([]byte(`{"cloud":["AWS"]}`), &c.Skills))
	cvs := &fakeCVs{stored: c}
	sg := Suggestion{ID: uuid.New(), CVID: c.ID, Section: cv.SectionSkills, Data: json.RawMessage(`{"cloud":["Azure"]}`)}
	repo := new(MockRepository)
	repo.On("GetSuggestion", mock.Anything, c.ID, sg.ID).Return(sg, nil).Once()
	repo.On("MarkApplied", mock.Anything, sg.ID, fixedNow).Return(nil).Once()
	svc := newCustomizationService(repo, cvs, nil)

	res, err := svc.ApplySuggestion(context.Background(), c.OwnerID, false, c.ID, sg.ID)

	require.NoError(t, err)
	assert.True(t, res.Merged)
	assert.True(t, res.Suggestion.Applied)
	assert.Equal(t, "Suggestion applied successfully", res.Message)
	raw, err := json.Marshal(res.CV.Skills)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cloud":["AWS","Azure"]}`, string(raw))
	assert.Equal(t, 1, cvs.mutated)
	repo.AssertExpectations(t)
}

func TestApplySuggestionWithoutData(t *testing.T) {
	c := sampleCV()
	cvs := &fakeCVs{stored: c}
	sg := Suggestion{ID: uuid.New(), CVID: c.ID, Section: cv.SectionGeneral}
	repo := new(MockRepository)
	repo.On("GetSuggestion", mock.Anything, c.ID, sg.ID).Return(sg, nil).Once()
	repo.On("MarkApplied", mock.Anything, sg.ID, fixedNow).Return(nil).Once()
	svc := newCustomizationService(repo, cvs, nil)

	res, err := svc.ApplySuggestion(context.Background(), c.OwnerID, false, c.ID, sg.ID)

	require.NoError(t, err)
	assert.False(t, res.Merged)
	assert.True(t, res.Suggestion.Applied)
	assert.Equal(t, 0, cvs.mutated)
	assert.Equal(t, 3, res.CV.CurrentVersion)
}

func TestApplySuggestionTwice(t *testing.T) {
	c := sampleCV()
	sg := Suggestion{ID: uuid.New(), CVID: c.ID, Section: cv.SectionSkills, Applied: true}
	repo := new(MockRepository)
	repo.On("GetSuggestion", mock.Anything, c.ID, sg.ID).Return(sg, nil).Once()
	cvs := &fakeCVs{stored: c}
	svc := newCustomizationService(repo, cvs, nil)

	_, err := svc.ApplySuggestion(context.Background(), c.OwnerID, false, c.ID, sg.ID)

	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Equal(t, 0, cvs.mutated)
	repo.AssertNotCalled(t, "MarkApplied", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplySuggestionNotFound(t *testing.T) {
	c := sampleCV()
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("GetSuggestion", mock.Anything, c.ID, id).Return(Suggestion{}, ErrSuggestionNotFound).Once()
	svc := newCustomizationService(repo, &fakeCVs{stored: c}, nil)

	_, err := svc.ApplySuggestion(context.Background(), c.OwnerID, false, c.ID, id)

	assert.ErrorIs(t, err, ErrSuggestionNotFound)
}

func TestEnhanceUnavailable(t *testing.T) {
	c := sampleCV()
	svc := newCustomizationService(new(MockRepository), &fakeCVs{stored: c}, nil)

	res, err := svc.Enhance(context.Background(), c.OwnerID, false, c.ID, "Go developer")

	require.NoError(t, err)
	assert.Equal(t, StatusUnavailable, res.Status)
	assert.Equal(t, c.Experiences[0].Description, res.EnhancedCV.Experiences[0].Description)
}

func TestEnhanceModelFailureReturnsOriginal(t *testing.T) {
	c := sampleCV()
	model := new(MockChatModel)
	model.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return("not json at all", nil).Once()
	svc := newCustomizationService(new(MockRepository), &fakeCVs{stored: c}, model)

	res, err := svc.Enhance(context.Background(), c.OwnerID, false, c.ID, "Go developer")

	require.NoError(t, err)
	assert.Equal(t, StatusUnavailable, res.Status)
	assert.Equal(t, "Built Docker pipelines", res.EnhancedCV.Experiences[0].Description)
}

func TestEnhanceSuccess(t *testing.T) {
	c := sampleCV()
	c.Certifications = []cv.Certification{{Name: "CKA"}}
	model := new(MockChatModel)
	model.On("Ask", mock.Anything, mock.Anything, mock.Anything).Return(
		`Here you go: {"experiences":[{"role":"Engineer","company":"Acme","start_date":"2020-01","description":"Led Kubernetes rollout"}],`+
			`"projects":[],"skills":["Go","Kubernetes"]}`, nil).Once()
	cvs := &fakeCVs{stored: c}
	svc := newCustomizationService(new(MockRepository), cvs, model)

	res, err := svc.Enhance(context.Background(), c.OwnerID, false, c.ID, "Kubernetes engineer")

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "Led Kubernetes rollout", res.EnhancedCV.Experiences[0].Description)
	assert.Equal(t, []string{"Go", "Kubernetes"}, res.EnhancedCV.Skills.Names())
	assert.Equal(t, "CKA", res.EnhancedCV.Certifications[0].Name)
	assert.Equal(t, 0, cvs.mutated, "enhance must not persist")
}

func TestEnhanceRejectsEmptyJobDescription(t *testing.T) {
	svc := newCustomizationService(new(MockRepository), &fakeCVs{}, nil)

	_, err := svc.Enhance(context.Background(), uuid.New(), false, uuid.New(), "")

	assert.ErrorIs(t, err, ErrEmptyJobDescription)
}

func TestMergeHeadKeepsTail(t *testing.T) {
	stored := []int{1, 2, 3, 4, 5, 6, 7}
	assert.Equal(t, []int{10, 20, 30, 40, 50, 6, 7}, mergeHead(stored, []int{10, 20, 30, 40, 50}))
	assert.Equal(t, []int{9}, mergeHead([]int{1}, []int{9}))
}
