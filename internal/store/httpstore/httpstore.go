// Package httpstore 通过服务端 HTTP API 实现笔记与视口的持久化适配器
// 负责线上表示（noteId 等字段名）与内存表示之间的对称转换
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haierkeys/note-board-sync-service/internal/board"
	"github.com/haierkeys/note-board-sync-service/pkg/geometry"
	"github.com/haierkeys/note-board-sync-service/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultTimeout 单次请求超时
const DefaultTimeout = 15 * time.Second

// Config 客户端配置
type Config struct {
	// BaseURL 服务端地址，如 http://127.0.0.1:9000
	BaseURL string
	// Timeout 请求超时，零值使用 DefaultTimeout
	Timeout time.Duration
	// HTTPClient 自定义 HTTP 客户端，nil 时内部创建
	HTTPClient *http.Client
	// Logger 为 nil 时不输出日志
	Logger *zap.Logger
}

// Client 远端笔记存储客户端
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// 线上表示，与服务端 API 的 JSON 字段一一对应
type noteRecord struct {
	NoteID  string  `json:"noteId"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Color   string  `json:"color"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Ctime   int64   `json:"ctime"`
	Mtime   int64   `json:"mtime"`
}

type noteListPayload struct {
	List  []*noteRecord `json:"list"`
	Total int           `json:"total"`
}

type viewportPayload struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Scale   float64 `json:"scale"`
}

// 服务端统一响应信封
type resEnvelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

// NewClient 创建远端存储客户端
func NewClient(c Config) *Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	lg := c.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(c.BaseURL, "/"),
		client:  client,
		logger:  lg,
	}
}

// FetchAll 拉取当前用户的全部笔记
// credential 为空时直接返回空列表，画板从空状态启动
func (s *Client) FetchAll(ctx context.Context, credential string) ([]*board.Note, error) {
	if credential == "" {
		return nil, nil
	}

	data, err := s.do(ctx, http.MethodGet, "/api/notes", credential, nil)
	if err != nil {
		return nil, err
	}

	var payload noteListPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, errors.Wrap(err, "decode note list failed")
		}
	}

	notes := make([]*board.Note, 0, len(payload.List))
	for _, rec := range payload.List {
		notes = append(notes, recordToNote(rec))
	}

	s.logger.Debug("notes fetched",
		zap.String(logger.FieldAction, "store.fetchAll"),
		zap.Int(logger.FieldCount, len(notes)))
	return notes, nil
}

// Create 持久化一条完整笔记，返回服务端存储后的记录
func (s *Client) Create(ctx context.Context, credential string, note *board.Note) (*board.Note, error) {
	body := noteToRecord(note)

	data, err := s.do(ctx, http.MethodPost, "/api/note", credential, body)
	if err != nil {
		return nil, err
	}

	var rec noteRecord
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, errors.Wrap(err, "decode created note failed")
		}
		return recordToNote(&rec), nil
	}
	return note.Clone(), nil
}

// Update 持久化一条笔记的部分字段
func (s *Client) Update(ctx context.Context, credential string, id string, fields board.NoteFields) error {
	_, err := s.do(ctx, http.MethodPut, "/api/note/"+id, credential, fields)
	return err
}

// Delete 删除一条笔记
func (s *Client) Delete(ctx context.Context, credential string, id string) error {
	_, err := s.do(ctx, http.MethodDelete, "/api/note/"+id, credential, nil)
	return err
}

// FetchViewport 拉取保存的视口状态，未保存过返回 (nil, nil)
func (s *Client) FetchViewport(ctx context.Context, credential string) (*geometry.Viewport, error) {
	data, err := s.do(ctx, http.MethodGet, "/api/setting/viewport", credential, nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var payload viewportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, "decode viewport failed")
	}
	return &geometry.Viewport{OffsetX: payload.OffsetX, OffsetY: payload.OffsetY, Scale: payload.Scale}, nil
}

// SaveViewport 保存视口状态
func (s *Client) SaveViewport(ctx context.Context, credential string, vp geometry.Viewport) error {
	body := viewportPayload{OffsetX: vp.OffsetX, OffsetY: vp.OffsetY, Scale: vp.Scale}
	_, err := s.do(ctx, http.MethodPost, "/api/setting/viewport", credential, body)
	return err
}

// do 发送请求并解包响应信封，返回 data 字段的原始 JSON
// 信封 code 非零视为业务失败
func (s *Client) do(ctx context.Context, method, path, credential string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body failed")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request failed")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response failed")
	}

	var envelope resEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrapf(err, "unexpected response from %s %s (http %d)", method, path, resp.StatusCode)
	}

	if envelope.Code != 0 || !envelope.Status {
		return nil, errors.Errorf("%s %s rejected: code=%d message=%s",
			method, path, envelope.Code, envelopeText(envelope.Message))
	}

	// data 字段缺省或为 JSON null 均视为无数据
	if string(envelope.Data) == "null" {
		return nil, nil
	}
	return envelope.Data, nil
}

func envelopeText(raw json.RawMessage) string {
	var msg string
	if json.Unmarshal(raw, &msg) == nil {
		return msg
	}
	return string(raw)
}

func recordToNote(rec *noteRecord) *board.Note {
	return &board.Note{
		ID:      rec.NoteID,
		Title:   rec.Title,
		Content: rec.Content,
		Color:   rec.Color,
		X:       rec.X,
		Y:       rec.Y,
		Width:   rec.Width,
		Height:  rec.Height,
		Ctime:   rec.Ctime,
		Mtime:   rec.Mtime,
	}
}

func noteToRecord(n *board.Note) *noteRecord {
	return &noteRecord{
		NoteID:  n.ID,
		Title:   n.Title,
		Content: n.Content,
		Color:   n.Color,
		X:       n.X,
		Y:       n.Y,
		Width:   n.Width,
		Height:  n.Height,
		Ctime:   n.Ctime,
		Mtime:   n.Mtime,
	}
}

// ViewportStore 将客户端与固定凭据绑定为 board.ViewportStore
type ViewportStore struct {
	client     *Client
	credential string
}

// NewViewportStore 创建绑定凭据的视口存储
func NewViewportStore(client *Client, credential string) *ViewportStore {
	return &ViewportStore{client: client, credential: credential}
}

// LoadViewport 读取保存的视口，未保存过返回默认视口
func (v *ViewportStore) LoadViewport() (geometry.Viewport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	vp, err := v.client.FetchViewport(ctx, v.credential)
	if err != nil {
		return geometry.DefaultViewport(), err
	}
	if vp == nil {
		return geometry.DefaultViewport(), nil
	}
	return *vp, nil
}

// SaveViewport 保存视口状态
func (v *ViewportStore) SaveViewport(vp geometry.Viewport) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	return v.client.SaveViewport(ctx, v.credential, vp)
}
