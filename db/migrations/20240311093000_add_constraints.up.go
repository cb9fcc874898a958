package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- a journal line carries exactly one positive side
				alter table journal_lines
				ADD CONSTRAINT check_one_sided
				CHECK ((debit > 0 AND credit = 0) OR (credit > 0 AND debit = 0));

			-- payments must carry a positive amount and the withheld part can not exceed it
				alter table payments
				ADD CONSTRAINT check_payment_amount
				CHECK (amount > 0 AND tds_amount >= 0 AND tds_amount <= amount);

			-- a bill can never be overpaid
				alter table bills
				ADD CONSTRAINT check_balance_due
				CHECK (balance_due >= 0);

			-- posted journal entries must balance: total debits equal total credits
				CREATE OR REPLACE FUNCTION check_entry_balanced()
					RETURNS TRIGGER AS $$
				DECLARE
					debit_sum BIGINT;
					credit_sum BIGINT;
				BEGIN
					IF NEW.state != 'posted' THEN
						RETURN NEW;
					END IF;

					SELECT INTO debit_sum COALESCE(SUM(debit), 0)
					FROM journal_lines
					WHERE journal_lines.journal_entry_id = NEW.id;

					SELECT INTO credit_sum COALESCE(SUM(credit), 0)
					FROM journal_lines
					WHERE journal_lines.journal_entry_id = NEW.id;

					IF debit_sum != credit_sum OR debit_sum = 0
					THEN
						RAISE EXCEPTION 'unbalanced journal entry [id:%] debits [%] credits [%]',
						NEW.id,
						debit_sum,
						credit_sum;
					END IF;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql;
				CREATE CONSTRAINT TRIGGER check_entry_balanced
				AFTER INSERT OR UPDATE ON journal_entries
				DEFERRABLE INITIALLY DEFERRED
				FOR EACH ROW EXECUTE PROCEDURE check_entry_balanced();
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
