package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"match-list-service/logger"
	"match-list-service/models"
)

// ErrSnapshotCorrupted 基线文件存在但无法解析
var ErrSnapshotCorrupted = errors.New("snapshot file corrupted")

// SnapshotStore 基线快照存储
//
// 引擎本身不碰文件系统，基线的读写由注入的存储实现负责。
// 同一轮运行内 Load 必须先于 Save 发生，Save 必须是原子的，
// 崩溃不能留下半写的基线。
type SnapshotStore interface {
	Load() (models.Snapshot, error)
	Save(snapshot models.Snapshot) error
}

// FileSnapshotStore 基于 JSON 文件的快照存储
//
// 参考部署使用单个按比赛ID索引的 JSON 文件。写入走
// 临时文件再 rename，保证原子性。
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore 创建文件快照存储
func NewFileSnapshotStore(dataFolder, filename string) *FileSnapshotStore {
	return &FileSnapshotStore{
		path: filepath.Join(dataFolder, filename),
	}
}

// Load 读取上一轮保存的基线，文件不存在时返回空快照（首次运行）
func (s *FileSnapshotStore) Load() (models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("[SnapshotStore] No previous snapshot at %s, starting fresh", s.path)
			return models.Snapshot{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var matches []*models.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupted, err)
	}

	snapshot, warnings := models.SnapshotFromList(matches)
	for _, warning := range warnings {
		logger.Warnf("[SnapshotStore] %s", warning)
	}

	logger.Printf("[SnapshotStore] Loaded %d matches from %s", len(snapshot), s.path)
	return snapshot, nil
}

// Save 原子化写入新基线
func (s *FileSnapshotStore) Save(snapshot models.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data folder: %w", err)
	}

	data, err := json.MarshalIndent(snapshot.ToList(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	logger.Printf("[SnapshotStore] Saved %d matches to %s", len(snapshot), s.path)
	return nil
}
