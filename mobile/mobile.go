//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// 仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.nightsky -o build/android/nightsky.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/NightSky.xcframework ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/nightsky/pkg/app"
	"github.com/decker502/nightsky/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	// 触屏设备上光标轨迹跟随第一个触点
	viewer, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(viewer)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
