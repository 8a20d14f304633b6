package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/floatlat/internal/catalog"
	"github.com/roach88/floatlat/internal/compiler"
	"github.com/roach88/floatlat/internal/ir"
)

// LoadResult contains the categories compiled from a catalog path.
type LoadResult struct {
	Categories []ir.Category
	CUEValue   cue.Value // The raw CUE value for additional processing
	FileCount  int       // Number of CUE files found
}

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCategories compiles a catalog from a single .cue file or from every
// .cue file of a directory (as one CUE package). It does not validate
// catalog invariants; see LoadCatalog.
func LoadCategories(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog: %v", err)}
	}

	var value cue.Value
	fileCount := 1
	if info.IsDir() {
		cueFiles, err := FindCUEFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(cueFiles) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
		}
		fileCount = len(cueFiles)

		ctx := cuecontext.New()
		instances := load.Instances([]string{"."}, &load.Config{Dir: path})
		if len(instances) == 0 {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
		}
		inst := instances[0]
		if inst.Err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
		}
		value = ctx.BuildInstance(inst)
	} else {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading catalog: %v", err)}
		}
		value = cuecontext.New().CompileBytes(src, cue.Filename(path))
	}

	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	cats, err := compiler.CompileCatalog(value)
	if err != nil {
		return nil, convertCompileError(err)
	}
	return &LoadResult{Categories: cats, CUEValue: value, FileCount: fileCount}, nil
}

// LoadCatalog returns the built-in catalog for an empty path, or compiles
// and validates the catalog at path.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	res, err := LoadCategories(path)
	if err != nil {
		return nil, err
	}
	return catalog.New(res.Categories)
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeCompile,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
}

// Error code constants - unified across all CLI commands.
// Catalog validation uses compiler's E2xx codes, resolution defects E3xx.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File or database write error
	ErrCodeCompile     = "E008" // Catalog structure does not compile
	ErrCodeNoPass      = "E009" // Database holds no matching pass

	ErrCodeUnknownOperator = "E010" // Operator name not recognized
	ErrCodeUnknownCategory = "E011" // Category name not in catalog
	ErrCodeArity           = "E012" // Wrong number of operands
)

// errorCode picks the most specific code for err.
func errorCode(err error) string {
	var loadErr *LoadError
	var argErr *ArgError
	var verrs compiler.ValidationErrors
	switch {
	case errors.As(err, &loadErr):
		return loadErr.Code
	case errors.As(err, &argErr):
		return argErr.Code
	case errors.As(err, &verrs) && len(verrs) > 0:
		return verrs[0].Code
	}
	if code := defectCode(err); code != "" {
		return code
	}
	return ErrCodeGeneric
}
