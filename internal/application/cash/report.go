package cash

import (
	"context"
	"fmt"
	"time"
)

// StatementPDF genera el extracto de caja del rango y devuelve bytes y nombre de archivo.
func (uc *UseCase) StatementPDF(ctx context.Context, from, to string) ([]byte, string, error) {
	if uc.reports == nil {
		return nil, "", fmt.Errorf("cash: generador de reportes no configurado")
	}
	f, t, err := parseRange(from, to)
	if err != nil {
		return nil, "", err
	}
	movements, err := uc.movements.List(ctx, f, t, listLimit+1)
	if err != nil {
		return nil, "", err
	}
	truncated := len(movements) > listLimit
	if truncated {
		movements = movements[:listLimit]
	}
	summary, err := uc.movements.Summarize(ctx, f, t)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.reports.GenerateCashStatement(ctx, Statement{From: f, To: t, Movements: movements, Summary: summary, Truncated: truncated})
	if err != nil {
		return nil, "", err
	}
	return pdf, statementFilename(f, t), nil
}

func statementFilename(from, to *time.Time) string {
	name := "caixa"
	if from != nil {
		name += "_" + from.Format("20060102")
	}
	if to != nil {
		name += "_" + to.Format("20060102")
	}
	return name + ".pdf"
}
