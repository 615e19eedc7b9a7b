package systems

import (
	"github.com/rs/zerolog/log"

	"github.com/decker502/spin3d/internal/recorder"
	"github.com/decker502/spin3d/pkg/components"
	"github.com/decker502/spin3d/pkg/ecs"
)

// SampleWriter 接收变换采样的存储接口
// recorder.Store 实现了该接口
type SampleWriter interface {
	WriteSamples(samples []recorder.TransformSample) error
}

// TraceSystem 按固定帧间隔记录运动实体的变换
//
// 必须在 MotionSystem 之后运行，记录的是本帧积分后的结果。
// 只读访问组件。写入失败只记录日志，不影响模拟。
type TraceSystem struct {
	entityManager *ecs.EntityManager
	writer        SampleWriter
	interval      uint64

	frame    uint64
	simTime  float64
	failures int
}

// NewTraceSystem 创建轨迹记录系统
//
// 参数:
//   - em: 实体管理器
//   - writer: 采样存储
//   - interval: 每隔多少帧采样一次，小于 1 时按 1 处理
func NewTraceSystem(em *ecs.EntityManager, writer SampleWriter, interval int) *TraceSystem {
	if interval < 1 {
		interval = 1
	}
	return &TraceSystem{
		entityManager: em,
		writer:        writer,
		interval:      uint64(interval),
	}
}

// Update 累计帧数和模拟时间，到达采样间隔时写入一批采样
func (s *TraceSystem) Update(deltaTime float64) {
	s.frame++
	s.simTime += deltaTime
	if s.frame%s.interval != 0 {
		return
	}

	samples := s.Collect()
	if len(samples) == 0 {
		return
	}
	if err := s.writer.WriteSamples(samples); err != nil {
		s.failures++
		log.Warn().Err(err).Str("component", "TraceSystem").Uint64("frame", s.frame).Msg("写入轨迹采样失败")
	}
}

// Collect 生成当前帧所有运动实体的采样（按实体ID顺序）
func (s *TraceSystem) Collect() []recorder.TransformSample {
	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.MotionComponent](s.entityManager)
	samples := make([]recorder.TransformSample, 0, len(ids))
	for _, id := range ids {
		tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}
		label := ""
		if l, ok := ecs.GetComponent[*components.LabelComponent](s.entityManager, id); ok {
			label = l.Name
		}
		samples = append(samples, recorder.TransformSample{
			Frame:   s.frame,
			SimTime: s.simTime,
			Entity:  uint64(id),
			Label:   label,
			Tx:      tr.Translation.X(),
			Ty:      tr.Translation.Y(),
			Tz:      tr.Translation.Z(),
			Qw:      tr.Rotation.W,
			Qx:      tr.Rotation.V.X(),
			Qy:      tr.Rotation.V.Y(),
			Qz:      tr.Rotation.V.Z(),
		})
	}
	return samples
}

// Resume 从快照恢复的帧数和模拟时间继续计数
func (s *TraceSystem) Resume(frame uint64, simTime float64) {
	s.frame = frame
	s.simTime = simTime
}

// Frame 返回已处理的帧数
func (s *TraceSystem) Frame() uint64 {
	return s.frame
}

// Failures 返回写入失败次数
func (s *TraceSystem) Failures() int {
	return s.failures
}
