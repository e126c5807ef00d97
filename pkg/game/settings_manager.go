package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/nightsky/pkg/config"
)

// AppName 持久化存储使用的应用名
const AppName = "nightsky"

// ViewerSettings 查看器设置
type ViewerSettings struct {
	Variant     string `yaml:"variant"`     // 当前变体
	CursorTrail bool   `yaml:"cursorTrail"` // 是否叠加光标轨迹
	Fullscreen  bool   `yaml:"fullscreen"`  // 启动时是否全屏
	Seed        uint64 `yaml:"seed"`        // 随机种子，0 表示按时间
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Variant:     config.DefaultVariant,
		CursorTrail: true,
		Fullscreen:  false,
		Seed:        0,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	settings     *ViewerSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// OpenStorage opens the gdata store for AppName. Failure is logged and
// yields nil, which SettingsManager treats as memory-only mode.
func OpenStorage() *gdata.Manager {
	if err := prepareStorage(); err != nil {
		log.Printf("[SettingsManager] Warning: storage not writable: %v", err)
		return nil
	}
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings are not persisted)", err)
		return nil
	}
	return m
}

// NewSettingsManager 创建设置管理器
//
// gdataManager 为 nil 时只在内存中保存设置。加载失败不影响创建，使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置；不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，缺失字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded: variant=%s cursorTrail=%v", loaded.Variant, loaded.CursorTrail)
	return nil
}

// Save 保存设置到 gdata；降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// Persistent reports whether settings survive a restart.
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

// SetVariant 设置当前变体（仅修改内存，需调用 Save 持久化）
func (sm *SettingsManager) SetVariant(name string) {
	sm.settings.Variant = name
}

// SetCursorTrail 设置光标轨迹开关
func (sm *SettingsManager) SetCursorTrail(enabled bool) {
	sm.settings.CursorTrail = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetSeed 设置随机种子
func (sm *SettingsManager) SetSeed(seed uint64) {
	sm.settings.Seed = seed
}
