//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前需要把 data/variants.yaml
// 复制到本目录的 data/ 下（make prepare-mobile）。
package mobile

import "embed"

//go:embed data/variants.yaml
var dataFS embed.FS
