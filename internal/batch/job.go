package batch

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/roach88/qsurf/internal/synth"
)

//go:embed schema.cue
var schemaCUE string

var (
	// ErrInvalidJob is returned when a job file cannot be read, parsed or
	// validated.
	ErrInvalidJob = errors.New("invalid job")

	// ErrUnsupportedFormat is returned for job files that are neither YAML nor CUE.
	ErrUnsupportedFormat = errors.New("unsupported job file format")
)

// Request is one synthesis request.
type Request struct {
	Name     string       `yaml:"name" json:"name,omitempty" validate:"max=64"`
	Distance int          `yaml:"distance" json:"distance" validate:"gte=3,odd"`
	Logical  []string     `yaml:"logical" json:"logical,omitempty" validate:"max=32,dive,oneof=X Z x z"`
	Compat   synth.Compat `yaml:"compat" json:"compat,omitempty"`
}

// Label returns Name, or a label derived from the distance.
func (r Request) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("d%d", r.Distance)
}

// Job is a list of requests plus run settings.
type Job struct {
	Parallelism int       `yaml:"parallelism" json:"parallelism,omitempty" validate:"gte=0,lte=64"`
	Requests    []Request `yaml:"requests" json:"requests" validate:"required,min=1,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("odd", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 != 0
	})
	return v
}

// Validate checks the job against its struct tags.
func (j *Job) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}
	return nil
}

// Load reads a job from a .yaml, .yml or .cue file.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read job file: %w", ErrInvalidJob, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(path, data)
	default:
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidJob, ErrUnsupportedFormat, path)
	}
}

// ParseYAML decodes a job from YAML. Unknown fields are rejected.
func ParseYAML(data []byte) (*Job, error) {
	var job Job
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&job); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidJob, err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// ParseCUE unifies a CUE job with the embedded schema and decodes it.
// filename is used for error positions only.
func ParseCUE(filename string, data []byte) (*Job, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling job schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to parse CUE: %w", ErrInvalidJob, err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("%w: job does not match schema: %w", ErrInvalidJob, err)
	}

	var job Job
	if err := unified.Decode(&job); err != nil {
		return nil, fmt.Errorf("%w: decoding CUE job: %w", ErrInvalidJob, err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}
