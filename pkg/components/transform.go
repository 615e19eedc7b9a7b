package components

import (
	"github.com/go-gl/mathgl/mgl64"
)

// OrientationEpsilon 旋转四元数模长允许偏离 1 的最大误差
const OrientationEpsilon = 1e-6

// TransformComponent 存储实体在三维空间中的位置、朝向和缩放
//
// 由场景初始化创建，之后拥有 MotionComponent 的实体只由 MotionSystem 修改。
// Rotation 始终保持为单位四元数。
type TransformComponent struct {
	// Translation 世界坐标位置
	Translation mgl64.Vec3

	// Rotation 朝向（单位四元数）
	Rotation mgl64.Quat

	// Scale 各轴缩放因子（1.0 = 原始大小）
	Scale mgl64.Vec3
}

// NewTransform 创建单位变换：原点、无旋转、缩放为 1
func NewTransform() *TransformComponent {
	return &TransformComponent{
		Translation: mgl64.Vec3{0, 0, 0},
		Rotation:    mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// NewTransformTRS 使用给定的位置、旋转和缩放创建变换
// 旋转会被归一化
func NewTransformTRS(translation mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) *TransformComponent {
	return &TransformComponent{
		Translation: translation,
		Rotation:    rotation.Normalize(),
		Scale:       scale,
	}
}

// SetTranslationXYZ 直接设置位置
func (t *TransformComponent) SetTranslationXYZ(x, y, z float64) {
	t.Translation = mgl64.Vec3{x, y, z}
}

// AppendRotation 在实体自身的局部坐标系中绕 axis 追加旋转 angle 弧度
//
// 新朝向 = 当前朝向 * Q(axis, angle)，axis 以实体局部坐标表示。
// 结果重新归一化，避免多帧累积后的数值漂移。axis 必须是单位向量。
func (t *TransformComponent) AppendRotation(axis mgl64.Vec3, angle float64) {
	if angle == 0 {
		return
	}
	delta := mgl64.QuatRotate(angle, axis)
	t.Rotation = t.Rotation.Mul(delta).Normalize()
}

// AppendTranslation 在当前位置上叠加位移
func (t *TransformComponent) AppendTranslation(offset mgl64.Vec3) {
	t.Translation = t.Translation.Add(offset)
}

// Matrix 返回模型矩阵 T * R * S
func (t *TransformComponent) Matrix() mgl64.Mat4 {
	translate := mgl64.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// ViewMatrix 返回以该变换为相机时的观察矩阵（模型矩阵的逆，忽略缩放）
func (t *TransformComponent) ViewMatrix() mgl64.Mat4 {
	inv := t.Rotation.Inverse()
	pos := inv.Rotate(t.Translation.Mul(-1))
	return mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(inv.Mat4())
}

// IsNormalized 检查朝向四元数是否仍为单位长度
func (t *TransformComponent) IsNormalized() bool {
	l := t.Rotation.Len()
	return l > 1-OrientationEpsilon && l < 1+OrientationEpsilon
}
