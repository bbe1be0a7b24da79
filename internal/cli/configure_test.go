package cli

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/phonebook/internal/model"
	"github.com/inovacc/phonebook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *store.Bolt {
	t.Helper()

	db, err := store.NewBolt(filepath.Join(t.TempDir(), "settings.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestConfigureModel_Save(t *testing.T) {
	db := setupStore(t)

	m, err := NewConfigureModel(db)
	require.NoError(t, err)

	m.inputs[0].SetValue("https://script.example.com/exec")
	m.inputs[1].SetValue("15")
	m.inputs[2].SetValue(" /etc/phonebook/admin.ini ")
	m.inputs[3].SetValue("Acme Directory")

	for range len(m.inputs) {
		_, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}

	require.Equal(t, len(m.inputs), m.focusIndex)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	_, _ = m.Update(cmd())
	require.NoError(t, m.Err)
	assert.True(t, m.Saved)

	cfg, err := db.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, model.Config{
		Endpoint:       "https://script.example.com/exec",
		RequestTimeout: 15,
		PasswordsFile:  "/etc/phonebook/admin.ini",
		Title:          "Acme Directory",
	}, *cfg)
}

func TestConfigureModel_Config(t *testing.T) {
	tests := []struct {
		name     string
		values   [4]string
		wantErr  bool
		expected model.Config
	}{
		{
			name:     "blank title and bad timeout fall back",
			values:   [4]string{"", "soon", "admin.ini", "  "},
			expected: model.Config{RequestTimeout: 0, PasswordsFile: "admin.ini", Title: model.DefaultTitle},
		},
		{
			name:    "endpoint without scheme",
			values:  [4]string{"example.com/exec", "0", "", "T"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewConfigureModel(setupStore(t))
			require.NoError(t, err)

			for i, v := range tt.values {
				m.inputs[i].SetValue(v)
			}

			cfg, err := m.config()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

type failingStore struct{}

func (failingStore) GetConfig() (*model.Config, error) {
	return nil, errors.New("database locked")
}

func (failingStore) SaveConfig(*model.Config) error {
	return errors.New("database locked")
}

func TestNewConfigureModel_StoreError(t *testing.T) {
	_, err := NewConfigureModel(failingStore{})
	assert.ErrorContains(t, err, "database locked")
}
