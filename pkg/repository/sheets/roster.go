package sheets

import (
	"context"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/availiq/availiq/pkg/domain/interfaces"
	"github.com/availiq/availiq/pkg/domain/model"
	"github.com/availiq/availiq/pkg/domain/types"
)

type rosterRepository struct {
	sheets *Sheets
}

func memberToRow(m *model.Member) []interface{} {
	return []interface{}{
		m.Email.Normalize().String(),
		m.DisplayName,
		m.ConversationHandle,
		strconv.FormatBool(m.Active),
	}
}

func rowToMember(row []interface{}) *model.Member {
	return &model.Member{
		Email:              types.EmailAddress(cell(row, 0)),
		DisplayName:        cell(row, 1),
		ConversationHandle: cell(row, 2),
		Active:             strings.EqualFold(cell(row, 3), "true"),
	}
}

func (r *rosterRepository) Upsert(ctx context.Context, member *model.Member) error {
	rows, err := r.sheets.getRows(ctx, usersTab)
	if err != nil {
		return goerr.Wrap(err, "failed to scan roster for upsert")
	}

	key := member.Email.Normalize()
	for i, row := range rows {
		if types.EmailAddress(cell(row, 0)).Normalize() == key {
			return r.sheets.updateRow(ctx, usersTab, i, memberToRow(member))
		}
	}

	return r.sheets.appendRow(ctx, usersTab, memberToRow(member))
}

func (r *rosterRepository) Get(ctx context.Context, email types.EmailAddress) (*model.Member, error) {
	rows, err := r.sheets.getRows(ctx, usersTab)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan roster")
	}

	key := email.Normalize()
	for _, row := range rows {
		if types.EmailAddress(cell(row, 0)).Normalize() == key {
			return rowToMember(row), nil
		}
	}

	return nil, goerr.Wrap(interfaces.ErrMemberNotFound, "member not in roster", goerr.V("email", key))
}

func (r *rosterRepository) List(ctx context.Context) ([]*model.Member, error) {
	rows, err := r.sheets.getRows(ctx, usersTab)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan roster")
	}

	members := make([]*model.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, rowToMember(row))
	}
	return members, nil
}
