package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	tableFile    = "historical_cap_rates.csv"
	dataFile     = "data.json"
	metadataFile = "metadata.json"
	archiveDir   = "archive"
)

// Store owns the on-disk canonical table and the derived views. The table
// is loaded fully into memory and rewritten in full on every successful
// run; the previous version is archived first, never deleted.
type Store struct {
	dir string
}

// NewStore creates the output and archive directories if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, archiveDir), 0o755); err != nil {
		return nil, eris.Wrap(err, "store: create output dirs")
	}
	return &Store{dir: dir}, nil
}

// TablePath returns the canonical CSV path.
func (s *Store) TablePath() string { return filepath.Join(s.dir, tableFile) }

// DataPath returns the derived dashboard JSON path.
func (s *Store) DataPath() string { return filepath.Join(s.dir, dataFile) }

// MetadataPath returns the run metadata JSON path.
func (s *Store) MetadataPath() string { return filepath.Join(s.dir, metadataFile) }

// Load reads the canonical table. A missing file is an empty table, not
// an error.
func (s *Store) Load() ([]Row, error) {
	content, err := os.ReadFile(s.TablePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "store: read table")
	}

	var rows []Row
	if err := csvutil.Unmarshal(content, &rows); err != nil {
		return nil, eris.Wrap(err, "store: decode table")
	}
	return rows, nil
}

// SaveTable archives any previous table, then writes the new one.
func (s *Store) SaveTable(rows []Row) error {
	if err := s.archiveExisting(); err != nil {
		return err
	}

	content, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrap(err, "store: encode table")
	}
	if err := os.WriteFile(s.TablePath(), content, 0o644); err != nil {
		return eris.Wrap(err, "store: write table")
	}
	return nil
}

// archiveExisting moves a previous table into the archive with a
// timestamp suffix. Archived tables are never deleted.
func (s *Store) archiveExisting() error {
	path := s.TablePath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrap(err, "store: stat table")
	}

	stamp := time.Now().Format("20060102_150405")
	backup := filepath.Join(s.dir, archiveDir, "historical_cap_rates_backup_"+stamp+".csv")
	if err := os.Rename(path, backup); err != nil {
		return eris.Wrap(err, "store: archive table")
	}
	zap.L().Debug("archived previous table", zap.String("backup", backup))
	return nil
}

// SaveDashboard writes the derived dashboard JSON.
func (s *Store) SaveDashboard(d Dashboard) error {
	return s.writeJSON(s.DataPath(), d, "dashboard json")
}

// RunMetadata is the persisted record of one processing run.
type RunMetadata struct {
	Processing ProcessingInfo `json:"processing"`
	Source     any            `json:"source"`
}

// ProcessingInfo summarizes the run itself.
type ProcessingInfo struct {
	ProcessedAt    string `json:"processedAt"`
	TotalRecords   int    `json:"totalRecords"`
	NewRecords     int    `json:"newRecords"`
	UpdatedRecords int    `json:"updatedRecords"`
	ToolVersion    string `json:"toolVersion"`
}

// SaveRunMetadata writes the run metadata JSON.
func (s *Store) SaveRunMetadata(meta RunMetadata) error {
	return s.writeJSON(s.MetadataPath(), meta, "run metadata")
}

func (s *Store) writeJSON(path string, v any, what string) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "store: encode %s", what)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return eris.Wrapf(err, "store: write %s", what)
	}
	return nil
}
