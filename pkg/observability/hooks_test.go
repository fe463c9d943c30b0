package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooks(t *testing.T) {
	ctx := context.Background()

	// These should not panic
	Render().OnRenderStart(ctx, RenderEvent{Level: "context", Format: "png"})
	Render().OnRenderComplete(ctx, RenderEvent{Level: "context", Format: "png", Duration: time.Second}, nil)
	Render().OnRenderComplete(ctx, RenderEvent{}, errors.New("boom"))

	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 1024)

	HTTP().OnRequest(ctx, "POST", "/api/context/render")
	HTTP().OnResponse(ctx, "POST", "/api/context/render", 200, time.Millisecond)
}

func TestSetHooks(t *testing.T) {
	Reset()
	defer Reset()

	customRender := &recordingRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &recordingRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)

	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}
}

func TestRenderHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingRenderHooks{}
	SetRenderHooks(rec)

	ctx := context.Background()
	Render().OnRenderStart(ctx, RenderEvent{Level: "code", Format: "svg"})
	Render().OnRenderComplete(ctx, RenderEvent{Level: "code", Format: "svg", Bytes: 42}, nil)

	if len(rec.started) != 1 || rec.started[0].Level != "code" {
		t.Errorf("started = %+v", rec.started)
	}
	if len(rec.completed) != 1 || rec.completed[0].Bytes != 42 {
		t.Errorf("completed = %+v", rec.completed)
	}
}

type recordingRenderHooks struct {
	NoopRenderHooks
	started   []RenderEvent
	completed []RenderEvent
}

func (r *recordingRenderHooks) OnRenderStart(_ context.Context, ev RenderEvent) {
	r.started = append(r.started, ev)
}

func (r *recordingRenderHooks) OnRenderComplete(_ context.Context, ev RenderEvent, _ error) {
	r.completed = append(r.completed, ev)
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
