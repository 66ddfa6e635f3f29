package commands

import (
	"github.com/vsinha/ptconfig/pkg/application/services/configurator"
	"github.com/vsinha/ptconfig/pkg/domain/entities"
)

// session opens a session on model and applies the --set assignments
func (a *app) session(model string, set []string) (*configurator.Session, error) {
	sel, err := parseAssignments(set)
	if err != nil {
		return nil, err
	}

	session := a.service.NewSession()
	if err := session.SelectModel(entities.ModelID(model)); err != nil {
		return nil, err
	}
	if err := chooseAll(session, sel); err != nil {
		return nil, err
	}
	return session, nil
}
