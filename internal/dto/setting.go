package dto

// ViewportDTO 视口状态
// 偏移为屏幕坐标，缩放因子由服务端原样保存，客户端负责范围校验
type ViewportDTO struct {
	OffsetX float64 `json:"offsetX" form:"offsetX"`
	OffsetY float64 `json:"offsetY" form:"offsetY"`
	Scale   float64 `json:"scale" form:"scale"`
}
