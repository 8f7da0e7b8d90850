package validate

import "strings"

// 存储侧纵深防御：入库/查重前剥掉标记注入相关字符。
// 渲染侧转义仍由展示层负责，这里不是替代品。
var sanitizer = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "")

// Sanitize 在字段通过校验之后调用，剥离 < > ' "
func Sanitize(s string) string { return sanitizer.Replace(s) }
