// Package telemetry 提供帧循环的 OpenTelemetry 指标
//
// 启用指标时从全局 MeterProvider 创建指标，宿主通过 otel.SetMeterProvider
// 安装 SDK 后即可拿到真实数据；否则使用 noop meter。
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/decker502/spin3d/internal/telemetry"

// FrameMetrics 记录单个场景的逐帧计数
type FrameMetrics struct {
	frames     metric.Int64Counter
	integrated metric.Int64Counter
	updateTime metric.Float64Histogram
	entities   metric.Int64ObservableGauge
	reg        metric.Registration

	attrs metric.MeasurementOption
}

// New 创建帧指标
//
// liveEntities 由 gauge 回调轮询，可以为 nil
func New(enabled bool, scene string, liveEntities func() int) (*FrameMetrics, error) {
	var m metric.Meter
	if enabled {
		m = otel.Meter(instrumentationName)
	} else {
		m = noop.NewMeterProvider().Meter(instrumentationName)
	}

	fm := &FrameMetrics{
		attrs: metric.WithAttributes(attribute.String("scene", scene)),
	}

	var err error
	fm.frames, err = m.Int64Counter(
		"spin3d.frames",
		metric.WithDescription("Simulation frames processed"),
		metric.WithUnit("{frame}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create frames counter: %w", err)
	}

	fm.integrated, err = m.Int64Counter(
		"spin3d.motion.integrated",
		metric.WithDescription("Entity transforms advanced by the motion system"),
		metric.WithUnit("{entity}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create integrated counter: %w", err)
	}

	fm.updateTime, err = m.Float64Histogram(
		"spin3d.update.duration",
		metric.WithDescription("Wall time spent in one scene update"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create update histogram: %w", err)
	}

	fm.entities, err = m.Int64ObservableGauge(
		"spin3d.entities",
		metric.WithDescription("Live entities in the scene"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create entities gauge: %w", err)
	}

	if liveEntities != nil {
		fm.reg, err = m.RegisterCallback(
			func(ctx context.Context, o metric.Observer) error {
				o.ObserveInt64(fm.entities, int64(liveEntities()), metric.WithAttributes(attribute.String("scene", scene)))
				return nil
			},
			fm.entities,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to register entities callback: %w", err)
		}
	}

	return fm, nil
}

// RecordFrame 记录处理完的一帧
func (fm *FrameMetrics) RecordFrame(ctx context.Context, integrated int, elapsed time.Duration) {
	fm.frames.Add(ctx, 1, fm.attrs)
	fm.integrated.Add(ctx, int64(integrated), fm.attrs)
	fm.updateTime.Record(ctx, elapsed.Seconds(), fm.attrs)
}

// Close 注销 gauge 回调
func (fm *FrameMetrics) Close() error {
	if fm.reg == nil {
		return nil
	}
	return fm.reg.Unregister()
}
