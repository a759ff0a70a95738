package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubTask 测试用任务实现
type stubTask struct {
	name string
}

func (t *stubTask) Name() string                  { return t.name }
func (t *stubTask) Schedule() string              { return "0 * * * * *" }
func (t *stubTask) Run(ctx context.Context) error { return nil }
func (t *stubTask) Timeout() time.Duration        { return time.Minute }
func (t *stubTask) Enabled() bool                 { return true }

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&stubTask{name: "demo"}); err != nil {
		t.Fatalf("注册任务失败: %v", err)
	}

	// 重复注册
	if err := registry.Register(&stubTask{name: "demo"}); !errors.Is(err, ErrTaskAlreadyRegistered) {
		t.Errorf("期望 ErrTaskAlreadyRegistered，实际为 %v", err)
	}

	// 空名称
	if err := registry.Register(&stubTask{name: ""}); !errors.Is(err, ErrEmptyTaskName) {
		t.Errorf("期望 ErrEmptyTaskName，实际为 %v", err)
	}
}

func TestRegistry_Get(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(&stubTask{name: "demo"}); err != nil {
		t.Fatalf("注册任务失败: %v", err)
	}

	got, err := registry.Get("demo")
	if err != nil {
		t.Fatalf("获取任务失败: %v", err)
	}
	if got.Name() != "demo" {
		t.Errorf("期望任务名为 demo，实际为 %s", got.Name())
	}

	if _, err := registry.Get("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际为 %v", err)
	}
}
