package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/container"
	"github.com/saulo-duarte/quizlens/internal/quiz"
)

type seedFile struct {
	Quizzes []seedQuiz `yaml:"quizzes"`
}

type seedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type seedQuiz struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Active      bool           `yaml:"active"`
	Category    *seedCategory  `yaml:"category"`
	Questions   []seedQuestion `yaml:"questions"`
}

type seedQuestion struct {
	Text      string            `yaml:"text"`
	Type      quiz.QuestionType `yaml:"type"`
	RatingMin *int              `yaml:"rating_min"`
	RatingMax *int              `yaml:"rating_max"`
	Options   []string          `yaml:"options"`
}

func readSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	if len(f.Quizzes) == 0 {
		return nil, fmt.Errorf("seed %s has no quizzes", path)
	}
	return &f, nil
}

func (s seedQuiz) build() (*quiz.Quiz, []*quiz.Question) {
	q := &quiz.Quiz{
		Title:       s.Title,
		Description: s.Description,
		IsActive:    s.Active,
	}
	if s.Category != nil && s.Category.Name != "" {
		q.Category = &quiz.Category{Name: s.Category.Name, Description: s.Category.Description}
	}

	questions := make([]*quiz.Question, 0, len(s.Questions))
	for _, sq := range s.Questions {
		question := &quiz.Question{
			Text:      sq.Text,
			Type:      sq.Type,
			RatingMin: sq.RatingMin,
			RatingMax: sq.RatingMax,
		}
		for _, label := range sq.Options {
			question.Options = append(question.Options, quiz.Option{Text: label})
		}
		questions = append(questions, question)
	}
	return q, questions
}

func newSeedCmd(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load quizzes from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := readSeedFile(file)
			if err != nil {
				return err
			}
			s, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			db, err := container.Bootstrap(ctx, s)
			if err != nil {
				return err
			}

			svc := quiz.NewQuizContainer(db, nil, 0).Service
			for _, sq := range f.Quizzes {
				q, questions := sq.build()
				if err := svc.CreateQuizWithQuestions(ctx, q, questions); err != nil {
					return fmt.Errorf("seed quiz %q: %w", sq.Title, err)
				}
			}
			config.WithContext(ctx).Infof("%d quizzes carregados de %s", len(f.Quizzes), file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "config/seed.yaml", "path to the seed YAML")
	return cmd
}
