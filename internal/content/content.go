// Package content holds the bundled question bank and study catalog.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skyscholar/skyscholar/internal/quiz"
	"github.com/skyscholar/skyscholar/internal/study"
)

//go:embed data/*.yaml
var files embed.FS

const (
	questionsFile = "data/questions.yaml"
	documentsFile = "data/documents.yaml"
)

// QuizBank is a titled set of quiz questions.
type QuizBank struct {
	Title     string          `yaml:"title"`
	Questions []quiz.Question `yaml:"questions"`
}

type documentFile struct {
	Documents []study.Document `yaml:"documents"`
}

// Questions returns the bundled quiz bank.
func Questions() (QuizBank, error) {
	return LoadQuestions("")
}

// LoadQuestions reads a quiz bank from path, or the bundled bank when path
// is empty.
func LoadQuestions(path string) (QuizBank, error) {
	data, src, err := read(path, questionsFile)
	if err != nil {
		return QuizBank{}, err
	}

	var bank QuizBank
	if err := decode(data, &bank); err != nil {
		return QuizBank{}, fmt.Errorf("parse %s: %w", src, err)
	}
	if bank.Title == "" {
		bank.Title = "Practice Quiz"
	}
	if err := quiz.Validate(bank.Questions); err != nil {
		return QuizBank{}, fmt.Errorf("%s: %w", src, err)
	}
	return bank, nil
}

// Documents returns the bundled study documents.
func Documents() ([]study.Document, error) {
	c, err := LoadCatalog("")
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

// LoadCatalog reads a document catalog from path, or the bundled catalog
// when path is empty.
func LoadCatalog(path string) (*study.Catalog, error) {
	data, src, err := read(path, documentsFile)
	if err != nil {
		return nil, err
	}

	var f documentFile
	if err := decode(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	c, err := study.NewCatalog(f.Documents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return c, nil
}

func read(path, bundled string) ([]byte, string, error) {
	if path == "" {
		data, err := files.ReadFile(bundled)
		if err != nil {
			return nil, "", fmt.Errorf("read bundled %s: %w", bundled, err)
		}
		return data, bundled, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, path, nil
}

// decode rejects unknown keys so typos in override files surface.
func decode(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}
