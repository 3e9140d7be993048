package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign 把 src 中与 dst 同名字段的值复制到 dst
// dst 目标结构体指针，src 源结构体
func StructAssign(src any, dst any) any {
	_ = copier.Copy(dst, src)
	return dst
}
