// Package chat answers free-text questions about the fleet. It is a
// thin prompt assembler over the language model: all numbers come from
// the operations snapshot, never recomputed here.
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	chaterrors "github.com/esnupy/lafa/internal/chat/errors"
	"github.com/esnupy/lafa/internal/opsview"
	"github.com/esnupy/lafa/internal/payrule"
	"github.com/esnupy/lafa/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Service interface {
	Ask(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

type service struct {
	completer Completer
	snapshots opsview.Service
	rules     payrule.Rules
	logger    *zap.Logger
}

func NewService(completer Completer, snapshots opsview.Service, rules payrule.Rules, logger ...*zap.Logger) Service {
	l := zap.L().Named("chat.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.service")
	}
	return &service{completer: completer, snapshots: snapshots, rules: rules, logger: l}
}

func (s *service) Ask(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	log := contextutil.Logger(ctx, s.logger)

	if s.completer == nil {
		return ChatResponse{}, chaterrors.ErrNotConfigured
	}

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		log.Warn("snapshot for chat failed", zap.Error(err))
		return ChatResponse{}, err
	}

	system, err := s.systemPrompt(snap)
	if err != nil {
		return ChatResponse{}, err
	}

	reply, err := s.completer.Complete(ctx, system, req.Message)
	if err != nil {
		log.Warn("completion failed", zap.Error(err))
		return ChatResponse{}, chaterrors.ErrAssistantUnavailable
	}

	return ChatResponse{Reply: reply}, nil
}

// systemPrompt renders the pay policy and the current snapshot so the
// model answers from real data instead of inventing numbers.
func (s *service) systemPrompt(snap opsview.Snapshot) (string, error) {
	context, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Eres el asistente de operaciones de LAFA, una flotilla de vehiculos electricos que opera en DiDi.

Reglas de pago semanal (lunes a domingo):
- Meta: %s horas trabajadas y $%s de ingresos en la semana.
- Si no se cumple la meta: apoyo fijo de $%s y nada mas.
- Si se cumple: salario base de $%s, mas $%s de bono por cada $%s completos de ingresos arriba de la meta.
- Horas extra: solo si la semana ANTERIOR tambien llego a %s horas; cada hora arriba de %s paga $%s, maximo %s horas.

Responde en espanol, breve y directo, usando solo los datos del siguiente snapshot de operaciones. Si la pregunta no se puede responder con estos datos, dilo claramente.

Snapshot:
%s`,
		s.rules.HoursThreshold.StringFixed(0),
		s.rules.RevenueThreshold.StringFixed(0),
		s.rules.SupportAmount.StringFixed(0),
		s.rules.BaseSalary.StringFixed(0),
		s.rules.BonusPerStep.StringFixed(0),
		s.rules.BonusStep.StringFixed(0),
		s.rules.HoursThreshold.StringFixed(0),
		s.rules.HoursThreshold.StringFixed(0),
		s.rules.OvertimeRate.StringFixed(0),
		s.rules.MaxOvertimeHours.StringFixed(0),
		context,
	), nil
}
