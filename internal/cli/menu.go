package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/storekeeper/internal/commands"
	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/dmitrijs2005/storekeeper/internal/models"
)

const choicePrompt = "Enter your choice (1-9)"

func (a *App) printMenu() {
	fmt.Fprintln(a.out, "\n===== Main Menu =====")
	for _, e := range commands.Menu {
		fmt.Fprintf(a.out, "%s. %s\n", e.Key, e.Label)
	}
}

// menuLoop serves the main menu until logout or end of input.
func (a *App) menuLoop(ctx context.Context) error {
	for {
		a.printMenu()
		choice, err := getSimpleText(a.reader, choicePrompt, a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.Logout(ctx)
				return nil
			}
			return err
		}

		entry, ok := commands.Lookup(choice)
		if !ok {
			fmt.Fprintln(a.out, "Invalid choice. Please enter a number between 1 and 9.")
			continue
		}

		cmd, err := a.collect(entry)
		if err != nil {
			if isInputError(err) {
				if errors.Is(err, io.EOF) {
					a.Logout(ctx)
					return nil
				}
				return err
			}
			a.renderError(cmd, err)
			continue
		}

		if cmd.Kind == commands.KindLogout {
			a.Logout(ctx)
			return nil
		}

		res, err := a.exec.Execute(ctx, cmd)
		if err != nil {
			a.log.Debug(ctx, "command failed", "kind", cmd.Kind.String(), "error", err)
			a.renderError(cmd, err)
			continue
		}
		a.render(res)
	}
}

// collect asks for whatever entry needs and builds its command.
func (a *App) collect(entry commands.MenuEntry) (commands.Command, error) {
	switch entry.Param {
	case commands.ParamBranchForm:
		return a.branchForm()
	case commands.ParamSaleForm:
		return a.saleForm()
	case commands.ParamBranchID, commands.ParamProductID:
		arg, err := getSimpleText(a.reader, entry.Prompt(), a.out)
		if err != nil {
			return commands.Command{}, inputError(err)
		}
		return entry.Build(arg)
	default:
		return entry.Build("")
	}
}

// readFields prompts for each label in turn.
func (a *App) readFields(labels ...string) ([]string, error) {
	out := make([]string, len(labels))
	for i, l := range labels {
		v, err := getSimpleText(a.reader, "Enter "+l, a.out)
		if err != nil {
			return nil, inputError(err)
		}
		out[i] = v
	}
	return out, nil
}

func (a *App) branchForm() (commands.Command, error) {
	fmt.Fprintln(a.out, "\n===== Add New Branch =====")
	f, err := a.readFields("Branch ID", "Branch Name", "Location")
	if err != nil {
		return commands.Command{}, err
	}
	return commands.AddBranch(models.Branch{ID: f[0], Name: f[1], Location: f[2]}), nil
}

func (a *App) saleForm() (commands.Command, error) {
	fmt.Fprintln(a.out, "\n===== Add New Sale =====")
	f, err := a.readFields("Branch ID", "Product ID", "Amount Sold")
	if err != nil {
		return commands.Command{}, err
	}
	cmd := commands.AddSale(commands.SaleInput{BranchID: f[0], ProductID: f[1]})
	amount, err := models.ParseAmount(f[2])
	if err != nil {
		return cmd, fmt.Errorf("%w: %q", common.ErrInvalidAmount, f[2])
	}
	cmd.Sale.Amount = amount
	return cmd, nil
}
