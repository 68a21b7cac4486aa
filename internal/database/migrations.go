package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		phone VARCHAR(32) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		name VARCHAR(64) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		avatar VARCHAR(500) NOT NULL DEFAULT '',
		sex SMALLINT NOT NULL DEFAULT 0,
		status SMALLINT NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(16) NOT NULL,
		creator_id UUID NOT NULL REFERENCES users(id),
		members UUID[] NOT NULL DEFAULT '{}',
		status SMALLINT NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(30) NOT NULL,
		team_id UUID NOT NULL REFERENCES teams(id),
		status SMALLINT NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS process_types (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(10) NOT NULL,
		team_id UUID NOT NULL REFERENCES teams(id),
		status SMALLINT NOT NULL DEFAULT 1,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(50) NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		project_id UUID NOT NULL REFERENCES projects(id),
		creator_id UUID NOT NULL REFERENCES users(id),
		process_type_id BIGINT REFERENCES process_types(id),
		priority SMALLINT NOT NULL DEFAULT 4 CHECK (priority BETWEEN 0 AND 4),
		start_time BIGINT NOT NULL DEFAULT 0,
		end_time BIGINT NOT NULL DEFAULT 0,
		reviewer_id UUID REFERENCES users(id),
		owner_ids UUID[] NOT NULL DEFAULT '{}',
		status SMALLINT NOT NULL DEFAULT 0,
		done_task_time TIMESTAMP WITH TIME ZONE,
		approved_task_time TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CHECK (end_time >= start_time)
	)`,

	`CREATE TABLE IF NOT EXISTS task_logs (
		id BIGSERIAL PRIMARY KEY,
		editor_id UUID NOT NULL REFERENCES users(id),
		receiver_id UUID NOT NULL REFERENCES users(id),
		team_id UUID NOT NULL REFERENCES teams(id),
		project_id UUID REFERENCES projects(id),
		task_id UUID REFERENCES tasks(id),
		type SMALLINT NOT NULL,
		status SMALLINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL UNIQUE,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_teams_creator_id ON teams(creator_id)`,
	`CREATE INDEX IF NOT EXISTS idx_teams_members ON teams USING gin (members)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_team_id ON projects(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_process_types_team_id ON process_types(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner_ids ON tasks USING gin (owner_ids)`,
	`CREATE INDEX IF NOT EXISTS idx_task_logs_receiver_team ON task_logs(receiver_id, team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id)`,

	// Keyword search
	`CREATE INDEX IF NOT EXISTS idx_projects_name_search ON projects USING gin (name gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_title_search ON tasks USING gin (title gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_users_name_search ON users USING gin (name gin_trgm_ops)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
