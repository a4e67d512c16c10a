// Package catalog loads course outlines from YAML and creates them through the services.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Course is one YAML document: a course with its lessons and final tests.
type Course struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Lessons     []Lesson `yaml:"lessons"`
	FinalTests  []Test   `yaml:"final_tests"`
}

type Lesson struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	VideoRef    string    `yaml:"video_ref"`
	Order       *int      `yaml:"order"`
	Sections    []Section `yaml:"sections"`
	Tests       []Test    `yaml:"tests"`
}

type Section struct {
	Title    string `yaml:"title"`
	Content  string `yaml:"content"`
	VideoRef string `yaml:"video_ref"`
	Order    *int   `yaml:"order"`
}

type Test struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Questions   []Question `yaml:"questions"`
}

type Question struct {
	Text    string   `yaml:"text"`
	Answers []Answer `yaml:"answers"`
}

type Answer struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// Parse decodes one course document.
func Parse(data []byte) (*Course, error) {
	var course Course
	if err := yaml.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("decoding course yaml: %w", err)
	}
	if strings.TrimSpace(course.Title) == "" {
		return nil, fmt.Errorf("course yaml has no title")
	}
	return &course, nil
}

func LoadFile(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	course, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return course, nil
}

// LoadDir reads every .yaml/.yml file under root, sorted by path.
// Files that do not decode into a titled course are skipped with a warning.
func LoadDir(root string) ([]*Course, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(paths)

	courses := make([]*Course, 0, len(paths))
	for _, path := range paths {
		course, err := LoadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Skipping invalid course YAML")
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}
