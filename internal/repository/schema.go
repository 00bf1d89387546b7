package repository

const schemaSQL = `
CREATE SCHEMA IF NOT EXISTS finance;

CREATE TABLE IF NOT EXISTS finance.settings (
	id               INT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	starting_balance DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
INSERT INTO finance.settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING;

CREATE TABLE IF NOT EXISTS finance.movements (
	id          BIGSERIAL PRIMARY KEY,
	date        DATE NOT NULL,
	amount      DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
	kind        TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
	description TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
ALTER TABLE finance.movements ADD COLUMN IF NOT EXISTS category TEXT NOT NULL DEFAULT '';

CREATE TABLE IF NOT EXISTS finance.recurring_incomes (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	amount       DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
	day_of_month INT NOT NULL CHECK (day_of_month BETWEEN 1 AND 31),
	start_date   DATE NOT NULL,
	end_date     DATE NOT NULL DEFAULT '2099-12-31',
	active       BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK (end_date >= start_date)
);

CREATE TABLE IF NOT EXISTS finance.recurring_payments (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	amount          DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
	day_of_month    INT NOT NULL CHECK (day_of_month BETWEEN 1 AND 31),
	start_date      DATE NOT NULL,
	end_date        DATE NOT NULL DEFAULT '2099-12-31',
	active          BOOLEAN NOT NULL DEFAULT TRUE,
	alert_lead_days INT NOT NULL DEFAULT 10,
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK (end_date >= start_date)
);

CREATE TABLE IF NOT EXISTS finance.installment_purchases (
	id                     BIGSERIAL PRIMARY KEY,
	product                TEXT NOT NULL,
	total_price            DOUBLE PRECISION NOT NULL CHECK (total_price >= 0),
	total_installments     INT NOT NULL CHECK (total_installments >= 1),
	monthly_amount         DOUBLE PRECISION NOT NULL,
	first_installment_date DATE NOT NULL,
	installments_remaining INT NOT NULL CHECK (installments_remaining >= 0),
	day_of_month           INT NOT NULL DEFAULT 0 CHECK (day_of_month BETWEEN 0 AND 31),
	alert_lead_days        INT NOT NULL DEFAULT 10,
	active                 BOOLEAN NOT NULL DEFAULT TRUE,
	created_at             TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS finance.credit_cards (
	id              BIGSERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	cutoff_day      INT NOT NULL CHECK (cutoff_day BETWEEN 1 AND 31),
	payment_day     INT NOT NULL CHECK (payment_day BETWEEN 1 AND 31),
	credit_limit    DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (credit_limit >= 0),
	alert_lead_days INT NOT NULL DEFAULT 10,
	active          BOOLEAN NOT NULL DEFAULT TRUE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS finance.card_charges (
	id         BIGSERIAL PRIMARY KEY,
	card_id    BIGINT NOT NULL REFERENCES finance.credit_cards (id) ON DELETE CASCADE,
	date       DATE NOT NULL,
	concept    TEXT NOT NULL,
	amount     DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
	category   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS card_charges_card_id_idx ON finance.card_charges (card_id);

CREATE TABLE IF NOT EXISTS finance.simulations (
	id                    UUID PRIMARY KEY,
	price                 DOUBLE PRECISION NOT NULL,
	installments          INT NOT NULL,
	monthly_amount        DOUBLE PRECISION NOT NULL,
	verdict               TEXT NOT NULL,
	critical_period_index INT,
	minimum_balance       DOUBLE PRECISION NOT NULL,
	final_balance         DOUBLE PRECISION NOT NULL,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
