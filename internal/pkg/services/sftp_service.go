package services

import (
	"bytes"
	"fmt"
	"path"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/logger"
)

// SftpService delivers finished report files to the partner drop directory.
type SftpService struct {
}

func NewSftpService() *SftpService {
	return &SftpService{}
}

func (s *SftpService) sftpConnect() (*sftp.Client, error) {
	sshConfig := &ssh.ClientConfig{
		User: configs.SFTP_USER,
		Auth: []ssh.AuthMethod{
			ssh.Password(configs.SFTP_PASSWORD),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	conn, err := ssh.Dial("tcp", fmt.Sprintf("%s:%s", configs.SFTP_HOST, configs.SFTP_PORT), sshConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SSH: %w", err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SFTP client: %w", err)
	}

	return client, nil
}

func (s *SftpService) UploadFileToSFTP(data *bytes.Buffer, remoteFilePath string) error {
	client, err := s.sftpConnect()
	if err != nil {
		return err
	}
	defer client.Close()

	if dir := path.Dir(remoteFilePath); dir != "." && dir != "/" {
		if err := client.MkdirAll(dir); err != nil {
			return fmt.Errorf("failed to create remote directory %s: %w", dir, err)
		}
	}

	remoteFile, err := client.Create(remoteFilePath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", remoteFilePath, err)
	}
	defer remoteFile.Close()

	if _, err := remoteFile.Write(data.Bytes()); err != nil {
		return fmt.Errorf("failed to write remote file %s: %w", remoteFilePath, err)
	}

	logger.Info("report delivered to sftp path %s", remoteFilePath)
	return nil
}
