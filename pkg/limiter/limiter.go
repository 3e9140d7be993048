// Package limiter provides path based token bucket rate limiting
// limiter 包提供基于路径的令牌桶限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器抽象，按请求解析限流键并查找对应令牌桶
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 单个令牌桶的配置
type BucketRule struct {
	// 限流键，通常为路由前缀
	Key string
	// 令牌填充间隔
	FillInterval time.Duration
	// 桶容量
	Capacity int64
	// 每次填充的令牌数
	Quantum int64
}

// Limiter 持有键到令牌桶的映射
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}
