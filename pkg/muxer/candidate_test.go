package muxer

import "testing"

func TestCandidateDisplay(t *testing.T) {
	dir := Candidate{Kind: KindDirectory, Path: "/home/u/code/api", Rel: "code/api"}
	if dir.Display() != "code/api" {
		t.Fatalf("expected home-relative display, got %q", dir.Display())
	}

	host := Candidate{Kind: KindSSHHost, Alias: "box"}
	if host.Display() != "ssh: box" {
		t.Fatalf("expected ssh marker, got %q", host.Display())
	}
}

func TestTarget_SSHHost(t *testing.T) {
	host := Candidate{Kind: KindSSHHost, Alias: "myserver"}
	got := host.Target("")

	if got.Name != "SSH_myserver" {
		t.Fatalf("expected default prefix, got %q", got.Name)
	}
	if got.Command != "ssh myserver" {
		t.Fatalf("expected remote-login command, got %q", got.Command)
	}
	if got.Dir != "" {
		t.Fatalf("ssh targets have no working directory, got %q", got.Dir)
	}
}

func TestTarget_SSHHostCustomPrefix(t *testing.T) {
	host := Candidate{Kind: KindSSHHost, Alias: "box"}
	if got := host.Target("remote-"); got.Name != "remote-box" {
		t.Fatalf("expected custom prefix, got %q", got.Name)
	}
}

func TestTarget_Directory(t *testing.T) {
	dir := Candidate{Kind: KindDirectory, Path: "/home/u/code/api", Rel: "code/api"}
	got := dir.Target("SSH_")

	if got.Name != "api" {
		t.Fatalf("expected final path segment as name, got %q", got.Name)
	}
	if got.Command != "" {
		t.Fatalf("directory targets use the default shell, got %q", got.Command)
	}
	if got.Dir != "/home/u/code/api" {
		t.Fatalf("expected absolute working directory, got %q", got.Dir)
	}
}

func TestSanitizeSessionName(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"my.project":     "my_project",
		"host:22":        "host_22",
		"SSH_db.prod.eu": "SSH_db_prod_eu",
	}
	for in, want := range cases {
		if got := SanitizeSessionName(in); got != want {
			t.Errorf("SanitizeSessionName(%q) = %q, want %q", in, got, want)
		}
	}
}
