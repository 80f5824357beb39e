package contentapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

const (
	dirCases   = "cases"
	dirNews    = "news"
	dirBanners = "banners"
	dirTeam    = "team"

	defaultBodyField = "content"
)

// FileOption customises a FileSource.
type FileOption func(*FileSource)

// WithBodyField sets the record field that receives the markdown body.
func WithBodyField(field string) FileOption {
	return func(s *FileSource) {
		if strings.TrimSpace(field) != "" {
			s.bodyField = field
		}
	}
}

// WithFileLogger injects the logger used for skipped files.
func WithFileLogger(logger interfaces.Logger) FileOption {
	return func(s *FileSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// FileSource serves records from markdown documents with front matter laid
// out as cases/, news/, banners/ and team/ directories. Front matter keys
// become record fields; the body is stored under the body field.
type FileSource struct {
	fs        fs.FS
	bodyField string
	logger    interfaces.Logger
}

var _ interfaces.ContentAPI = (*FileSource)(nil)

// NewFileSource reads documents from filesystem.
func NewFileSource(filesystem fs.FS, opts ...FileOption) *FileSource {
	s := &FileSource{
		fs:        filesystem,
		bodyField: defaultBodyField,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDirSource reads documents below dir on the local disk.
func NewDirSource(dir string, opts ...FileOption) *FileSource {
	return NewFileSource(os.DirFS(dir), opts...)
}

// FetchContent loads the cases, news and banners directories.
func (s *FileSource) FetchContent(ctx context.Context, req interfaces.PageRequest) (*interfaces.ContentEnvelope, error) {
	req = normalizePage(req)
	cases, err := s.load(ctx, dirCases, req)
	if err != nil {
		return nil, err
	}
	news, err := s.load(ctx, dirNews, req)
	if err != nil {
		return nil, err
	}
	banners, err := s.load(ctx, dirBanners, req)
	if err != nil {
		return nil, err
	}
	return &interfaces.ContentEnvelope{Data: interfaces.ContentCollections{
		Cases:   cases,
		News:    news,
		Banners: banners,
	}}, nil
}

// FetchTeam loads the team directory.
func (s *FileSource) FetchTeam(ctx context.Context, req interfaces.PageRequest) (*interfaces.TeamEnvelope, error) {
	team, err := s.load(ctx, dirTeam, normalizePage(req))
	if err != nil {
		return nil, err
	}
	return &interfaces.TeamEnvelope{Data: interfaces.TeamCollections{Team: team}}, nil
}

func (s *FileSource) load(ctx context.Context, dir string, req interfaces.PageRequest) ([]interfaces.Record, error) {
	entries, err := fs.ReadDir(s.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []interfaces.Record{}, nil
		}
		return nil, wrapExternal(fmt.Errorf("contentapi: read %s: %w", dir, err), "content files could not be listed", textCodeFiles)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	start := (req.Page - 1) * req.Limit
	if start >= len(names) {
		return []interfaces.Record{}, nil
	}
	names = names[start:min(start+req.Limit, len(names))]

	out := make([]interfaces.Record, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		filePath := path.Join(dir, name)
		data, err := fs.ReadFile(s.fs, filePath)
		if err != nil {
			return nil, wrapExternal(fmt.Errorf("contentapi: read %s: %w", filePath, err), "content file could not be read", textCodeFiles)
		}
		record, err := s.parse(data)
		if err != nil {
			s.logger.Warn("contentapi.files.skipped", "path", filePath, "error", err)
			continue
		}
		if _, ok := record["id"]; !ok {
			record["id"] = strings.TrimSuffix(name, path.Ext(name))
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *FileSource) parse(data []byte) (interfaces.Record, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	record, _ := normalizeValue(meta).(map[string]any)
	if record == nil {
		record = map[string]any{}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		if _, ok := record[s.bodyField]; !ok {
			record[s.bodyField] = text
		}
	}
	return record, nil
}

// normalizeValue converts YAML decoded values into the shapes a JSON payload
// would carry.
func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			out[key] = normalizeValue(inner)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			out[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, inner := range typed {
			out[i] = normalizeValue(inner)
		}
		return out
	case time.Time:
		return typed.Format(time.RFC3339)
	default:
		return value
	}
}
