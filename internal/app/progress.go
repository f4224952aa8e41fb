package app

import (
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progressBar renders engine progress percentages on w.
type progressBar struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

func newProgressBar(w io.Writer) *progressBar {
	p := mpb.New(
		mpb.WithOutput(w),
		mpb.WithRefreshRate(200*time.Millisecond),
		mpb.WithAutoRefresh(),
	)
	bar := p.AddBar(100,
		mpb.PrependDecorators(decor.Name("transcribing ")),
		mpb.AppendDecorators(decor.Percentage(decor.WCSyncSpace)),
	)
	return &progressBar{container: p, bar: bar}
}

func (b *progressBar) update(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	b.bar.SetCurrent(int64(percent))
}

// finish completes or aborts the bar and waits for the final render.
func (b *progressBar) finish(ok bool) {
	if ok {
		b.bar.SetTotal(100, true)
	} else {
		b.bar.Abort(false)
	}
	b.container.Wait()
}
