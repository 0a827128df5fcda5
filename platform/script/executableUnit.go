package script

import (
	"fmt"
	"log/slog"
	"time"

	engineTypes "github.com/neutralobj/go-neutralobj/engines/types"
	"github.com/neutralobj/go-neutralobj/internal/helpers"
	"github.com/neutralobj/go-neutralobj/platform/data"
	"github.com/neutralobj/go-neutralobj/platform/script/loader"
)

const checksumLength = 12

// ExecutableUnit is a compiled object together with the provider of its call input.
// It is created once and evaluated many times.
type ExecutableUnit struct {
	// ID identifies this version of the object, derived from the source when not given.
	ID string

	CreatedAt time.Time

	// ScriptLoader is where the source came from (disk, string, bytes).
	ScriptLoader loader.Loader

	Compiler Compiler

	Content ExecutableContent

	// DataProvider supplies the {"params", "schema"} input for each call.
	DataProvider data.Provider

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewExecutableUnit loads and compiles the object. An empty versionID is replaced by a
// short checksum of the source.
func NewExecutableUnit(
	handler slog.Handler,
	versionID string,
	scriptLoader loader.Loader,
	compiler Compiler,
	dataProvider data.Provider,
) (*ExecutableUnit, error) {
	handler, logger := helpers.SetupLogger(handler, "script", "ExecutableUnit")

	if compiler == nil {
		return nil, ErrCompilerNil
	}
	if scriptLoader == nil {
		return nil, ErrLoaderNil
	}

	reader, err := scriptLoader.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to get reader from loader: %w", err)
	}

	exe, err := compiler.Compile(reader)
	if err != nil {
		return nil, fmt.Errorf("compiler failed: %w", err)
	}

	if versionID == "" {
		versionID = helpers.ShortID([]byte(exe.GetSource()), checksumLength)
	}

	if dataProvider == nil {
		dataProvider = data.NewStaticProvider(nil)
	}

	logger.Debug("executable unit created", "ID", versionID, "engine", exe.GetEngineType())
	return &ExecutableUnit{
		ID:           versionID,
		CreatedAt:    time.Now(),
		ScriptLoader: scriptLoader,
		Compiler:     compiler,
		Content:      exe,
		DataProvider: dataProvider,
		logHandler:   handler,
		logger:       logger.With("ID", versionID),
	}, nil
}

func (exe *ExecutableUnit) String() string {
	return fmt.Sprintf("ExecutableUnit{ID: %s, CreatedAt: %s, Compiler: %s, Loader: %s}",
		exe.ID, exe.CreatedAt, exe.Compiler, exe.ScriptLoader)
}

func (exe *ExecutableUnit) GetID() string {
	return exe.ID
}

func (exe *ExecutableUnit) GetContent() ExecutableContent {
	return exe.Content
}

func (exe *ExecutableUnit) GetCreatedAt() time.Time {
	return exe.CreatedAt
}

func (exe *ExecutableUnit) GetEngineType() engineTypes.Type {
	return exe.Content.GetEngineType()
}

func (exe *ExecutableUnit) GetCompiler() Compiler {
	return exe.Compiler
}

func (exe *ExecutableUnit) GetLoader() loader.Loader {
	return exe.ScriptLoader
}

func (exe *ExecutableUnit) GetDataProvider() data.Provider {
	return exe.DataProvider
}
