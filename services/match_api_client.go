package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"match-list-service/logger"
	"match-list-service/models"
)

// MatchFetcher 上游比赛列表数据源
type MatchFetcher interface {
	FetchMatches() ([]*models.Match, error)
}

// MatchAPIClient 从比赛列表服务获取当前比赛
//
// 上游返回已解析好的比赛 JSON 列表，本客户端不负责任何
// 凭证处理，认证由部署网络内的上游服务完成。
type MatchAPIClient struct {
	baseURL string
	client  *http.Client
}

// NewMatchAPIClient 创建比赛列表客户端
func NewMatchAPIClient(baseURL string) *MatchAPIClient {
	return &MatchAPIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchMatches 获取当前完整比赛列表
func (c *MatchAPIClient) FetchMatches() ([]*models.Match, error) {
	url := fmt.Sprintf("%s/matches", c.baseURL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Printf("[MatchAPI] Fetching matches list from %s", url)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var matches []*models.Match
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse matches JSON: %w", err)
	}

	logger.Printf("[MatchAPI] Retrieved %d matches", len(matches))

	return matches, nil
}
