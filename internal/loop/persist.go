package loop

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-destroyer/internal/game"
	"github.com/tomz197/asteroid-destroyer/internal/score"
)

const storeTimeout = 2 * time.Second

// persister writes new high scores and finished runs to the score store.
// Failures are logged; the game keeps its in-memory high score either way.
type persister struct {
	store  *score.Store
	logger *log.Logger
}

func (p *persister) Emit(e game.Event) {
	switch e.Kind {
	case game.EventHighScore:
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := p.store.SaveHighScore(ctx, e.Value); err != nil {
			p.logger.Error("save high score", "score", e.Value, "err", err)
		}
	case game.EventSessionWin, game.EventSessionFail:
		outcome := score.OutcomeFail
		if e.Kind == game.EventSessionWin {
			outcome = score.OutcomeWin
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		run := score.Run{Outcome: outcome, Score: e.Value, Progress: e.Progress}
		if err := p.store.RecordRun(ctx, run); err != nil {
			p.logger.Error("record run", "outcome", outcome, "err", err)
		}
	}
}

var _ game.Sink = (*persister)(nil)
