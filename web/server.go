package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"match-list-service/config"
	"match-list-service/database"
	"match-list-service/models"
)

type Server struct {
	config     *config.Config
	store      *database.Store // 文件存储模式下为 nil
	wsHub      *Hub
	httpServer *http.Server
	upgrader   websocket.Upgrader

	mu        sync.RWMutex
	latest    *models.CategorizedChanges
	runCount  int
	startTime time.Time
}

func NewServer(cfg *config.Config, store *database.Store, hub *Hub) *Server {
	return &Server{
		config:    cfg,
		store:     store,
		wsHub:     hub,
		startTime: time.Now(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有来源(生产环境需要限制)
			},
		},
	}
}

// RecordRun 记录一轮检测结果并广播给 WebSocket 客户端
func (s *Server) RecordRun(result *models.CategorizedChanges) {
	s.mu.Lock()
	s.latest = result
	s.runCount++
	s.mu.Unlock()

	for _, detail := range result.Changes {
		s.wsHub.Broadcast(&WSMessage{
			Type:     "match_change",
			MatchID:  detail.MatchID,
			Category: string(detail.Category),
			Priority: string(detail.Priority),
			Data:     detail,
		})
	}
}

func (s *Server) Start() error {
	router := mux.NewRouter()

	// API路由
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/health/simple", s.handleHealthSimple).Methods("GET")
	api.HandleFunc("/changes/latest", s.handleGetLatestRun).Methods("GET")
	api.HandleFunc("/changes", s.handleGetChanges).Methods("GET")
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")

	// WebSocket路由
	router.HandleFunc("/ws", s.handleWebSocket)

	// 根路由
	router.HandleFunc("/", s.handleRoot).Methods("GET")

	// CORS配置
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// handleRoot 服务信息
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service": "match-list-service",
		"status":  "running",
		"endpoints": []string{
			"/api/health",
			"/api/health/simple",
			"/api/changes/latest",
			"/api/changes",
			"/api/stats",
			"/ws",
		},
	})
}

// handleHealth 健康检查
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	response := map[string]interface{}{
		"status":         "ok",
		"time":           time.Now().Unix(),
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
		"runs_completed": s.runCount,
	}

	if s.latest != nil {
		response["last_run"] = map[string]interface{}{
			"run_id":        s.latest.RunID,
			"run_timestamp": s.latest.RunTimestamp,
			"total_changes": s.latest.TotalChanges,
			"has_critical":  s.latest.HasCriticalChanges(),
			"warnings":      len(s.latest.Warnings),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleHealthSimple 简单健康检查（给负载均衡探针用）
func (s *Server) handleHealthSimple(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleGetLatestRun 获取最近一轮检测结果
func (s *Server) handleGetLatestRun(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()

	if latest == nil {
		http.Error(w, "no processing run completed yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(latest)
}

// handleGetChanges 获取历史变更明细（需要数据库存储）
func (s *Server) handleGetChanges(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "change history requires database storage", http.StatusServiceUnavailable)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	changes, err := s.store.GetLatestChanges(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"changes": changes,
		"limit":   limit,
	})
}

// handleGetStats 获取统计信息
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if s.store != nil {
		stats, err := s.store.GetStats()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(stats)
		return
	}

	// 文件存储模式只有内存中的统计
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"runs_completed": s.runCount,
	}
	if s.latest != nil {
		stats["last_run_changes"] = s.latest.TotalChanges
		stats["by_category"] = s.latest.ByCategory
		stats["by_priority"] = s.latest.ByPriority
	}
	json.NewEncoder(w).Encode(stats)
}

// handleWebSocket WebSocket连接处理
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:        s.wsHub,
		conn:       conn,
		send:       make(chan []byte, 256),
		categories: make(map[string]bool),
		matchIDs:   make(map[string]bool),
	}

	client.hub.register <- client

	// 发送欢迎消息
	welcomeMsg := &WSMessage{
		Type: "connected",
		Data: map[string]interface{}{
			"message": "Connected to match change feed",
			"time":    time.Now().Unix(),
		},
	}
	welcomeData, _ := json.Marshal(welcomeMsg)
	client.send <- welcomeData

	go client.writePump()
	go client.readPump()
}
