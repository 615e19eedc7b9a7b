package components

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidMotion 运动参数不合法（非有限值或旋转轴不是单位向量）
var ErrInvalidMotion = errors.New("invalid motion profile")

const (
	// axisUnitTolerance 旋转轴模长与 1 的最大允许误差
	axisUnitTolerance = 1e-6

	// minRotationAngle 小于该角度（弧度）的四元数/旋转向量视为无旋转，
	// 此时轴向量的提取在数值上不稳定
	minRotationAngle = 1e-12
)

// MotionComponent 存储实体恒定的线速度和角速度
//
// 角速度以"单位旋转轴 + 角速率"表示。零值表示静止。
// 构造后不可变：只提供读取方法，MotionSystem 只读取不修改。
type MotionComponent struct {
	linear   mgl64.Vec3 // 线速度（单位/秒，世界坐标）
	axis     mgl64.Vec3 // 单位旋转轴，仅在 rotating 为 true 时有效
	rate     float64    // 角速率（弧度/秒）
	rotating bool
}

// NewMotionComponent 使用显式的旋转轴和角速率创建运动组件
//
// 参数:
//   - linear: 线速度（单位/秒）
//   - axis: 旋转轴，rate 非零时必须是单位向量
//   - rate: 角速率（弧度/秒），为 0 表示不旋转，此时 axis 被忽略
//
// 返回:
//   - *MotionComponent: 运动组件
//   - error: 参数包含 NaN/Inf，或 rate 非零而 axis 不是单位向量时返回 ErrInvalidMotion
func NewMotionComponent(linear, axis mgl64.Vec3, rate float64) (*MotionComponent, error) {
	if !finiteVec(linear) {
		return nil, fmt.Errorf("%w: linear velocity %v is not finite", ErrInvalidMotion, linear)
	}
	if !finite(rate) {
		return nil, fmt.Errorf("%w: angular rate %v is not finite", ErrInvalidMotion, rate)
	}

	m := &MotionComponent{linear: linear}
	if rate == 0 {
		return m, nil
	}

	if !finiteVec(axis) {
		return nil, fmt.Errorf("%w: rotation axis %v is not finite", ErrInvalidMotion, axis)
	}
	if l := axis.Len(); math.Abs(l-1) > axisUnitTolerance {
		return nil, fmt.Errorf("%w: rotation axis %v has length %g, want 1", ErrInvalidMotion, axis, l)
	}

	m.axis = axis
	m.rate = rate
	m.rotating = true
	return m, nil
}

// NewMotionComponentFromRotationVector 使用旋转向量创建运动组件
//
// omega 的方向为旋转轴，模长为角速率（弧度/秒）。零向量表示不旋转。
func NewMotionComponentFromRotationVector(linear, omega mgl64.Vec3) (*MotionComponent, error) {
	if !finiteVec(omega) {
		return nil, fmt.Errorf("%w: rotation vector %v is not finite", ErrInvalidMotion, omega)
	}
	rate := omega.Len()
	if rate < minRotationAngle {
		return NewMotionComponent(linear, mgl64.Vec3{}, 0)
	}
	return NewMotionComponent(linear, omega.Mul(1/rate), rate)
}

// NewMotionComponentFromQuat 使用单位四元数表示每秒的旋转量创建运动组件
//
// 四元数的旋转轴即角速度方向，旋转角（取 [0, π]）即每秒转过的弧度。
// 单位四元数（角度为 0）表示不旋转。
func NewMotionComponentFromQuat(linear mgl64.Vec3, q mgl64.Quat) (*MotionComponent, error) {
	if !finite(q.W) || !finiteVec(q.V) {
		return nil, fmt.Errorf("%w: rotation quaternion %v is not finite", ErrInvalidMotion, q)
	}
	if l := q.Len(); math.Abs(l-1) > axisUnitTolerance {
		return nil, fmt.Errorf("%w: rotation quaternion has length %g, want 1", ErrInvalidMotion, l)
	}

	axis, angle, ok := quatAxisAngle(q)
	if !ok {
		return NewMotionComponent(linear, mgl64.Vec3{}, 0)
	}
	return NewMotionComponent(linear, axis, angle)
}

// NewMotionComponentFromEuler 使用欧拉角（弧度）表示每秒的旋转量创建运动组件
//
// 旋转顺序为先绕 X 轴 roll，再绕 Y 轴 pitch，最后绕 Z 轴 yaw。
func NewMotionComponentFromEuler(linear mgl64.Vec3, roll, pitch, yaw float64) (*MotionComponent, error) {
	if !finite(roll) || !finite(pitch) || !finite(yaw) {
		return nil, fmt.Errorf("%w: euler angles (%v, %v, %v) are not finite", ErrInvalidMotion, roll, pitch, yaw)
	}
	return NewMotionComponentFromQuat(linear, EulerToQuat(roll, pitch, yaw))
}

// EulerToQuat 将欧拉角（弧度）转换为四元数 Rz(yaw) * Ry(pitch) * Rx(roll)
func EulerToQuat(roll, pitch, yaw float64) mgl64.Quat {
	qx := mgl64.QuatRotate(roll, mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(pitch, mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx).Normalize()
}

// Linear 返回线速度
func (m *MotionComponent) Linear() mgl64.Vec3 {
	return m.linear
}

// Rotation 返回旋转轴和角速率
// ok 为 false 表示不旋转，此时 axis 无意义
func (m *MotionComponent) Rotation() (axis mgl64.Vec3, rate float64, ok bool) {
	if !m.rotating {
		return mgl64.Vec3{}, 0, false
	}
	return m.axis, m.rate, true
}

// IsStatic 线速度和角速度均为零时返回 true
func (m *MotionComponent) IsStatic() bool {
	return !m.rotating && m.linear == (mgl64.Vec3{})
}

// quatAxisAngle 从单位四元数提取旋转轴和角度（[0, π]）
func quatAxisAngle(q mgl64.Quat) (mgl64.Vec3, float64, bool) {
	q = q.Normalize()
	if q.W < 0 {
		q = mgl64.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	w := math.Min(1, q.W)
	angle := 2 * math.Acos(w)
	sinHalf := math.Sqrt(1 - w*w)
	if angle < minRotationAngle || sinHalf < minRotationAngle {
		return mgl64.Vec3{}, 0, false
	}
	axis := q.V.Mul(1 / sinHalf).Normalize()
	return axis, angle, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteVec(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
