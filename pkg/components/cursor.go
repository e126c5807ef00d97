package components

// Cursor holds the pointer-follow state of the cursor overlay.
type Cursor struct {
	// 指针的原始位置（弹簧的目标）
	TargetX, TargetY float64

	// 弹簧积分后的绘制位置和速度
	X, Y   float64
	VX, VY float64

	Visible  bool
	Placed   bool // 进入视口后是否已收到过指针位置
	Hovering bool
	Scale    float64 // 悬停时趋向 HoverScale，否则趋向 1
	VScale   float64

	// 上一个轨迹点的生成位置
	LastTrailX, LastTrailY float64
	HasTrail               bool
}
