// Package embedded 提供嵌入资源的统一访问接口
//
// Go embed 指令只能嵌入当前包目录及其子目录的文件，因此 embed.FS 变量
// 声明在项目根目录（embed.go）和 mobile/embed.go，由入口调用 Init 注入。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/decker502/nightsky/pkg/config"
)

// VariantsPath is the embedded variant file.
const VariantsPath = "data/variants.yaml"

// ErrNotInitialized is returned before Init has been called.
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

// ErrVariantsMissing is returned when the embedded FS has no variant file.
var ErrVariantsMissing = errors.New("embedded " + VariantsPath + " missing, pass a config path instead")

var dataFS fs.FS

// Init 注入根目录声明的 embed.FS
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
}

// IsInitialized 返回是否已初始化
func IsInitialized() bool {
	return dataFS != nil
}

// normalize 统一路径分隔符并校验前缀
func normalize(path string) (string, error) {
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// ReadFile 读取嵌入文件内容，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if dataFS == nil {
		return nil, ErrNotInitialized
	}
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查嵌入文件是否存在
func Exists(path string) bool {
	if dataFS == nil {
		return false
	}
	path, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, path)
	return err == nil
}

// LoadVariants loads the variant file. A non-empty override is read from
// disk; otherwise the embedded data/variants.yaml is used.
func LoadVariants(override string) (*config.VariantsFile, error) {
	if override != "" {
		return config.LoadVariants(override)
	}
	if IsInitialized() && !Exists(VariantsPath) {
		return nil, ErrVariantsMissing
	}
	data, err := ReadFile(VariantsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded variants: %w", err)
	}
	f, err := config.ParseVariants(data)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", VariantsPath, err)
	}
	return f, nil
}
