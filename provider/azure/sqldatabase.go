// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

const defaultSQLSKU = "Basic"

func (env *azureEnviron) deploySQLDatabase(ctx context.Context, spec resources.SQLDatabaseSpec) (*resources.Result, error) {
	group := env.group()
	server, err := env.clients.SQL.CreateServer(ctx, group, spec.ServerName, armsql.Server{
		Location: to.Ptr(env.cloud.Region),
		Properties: &armsql.ServerProperties{
			AdministratorLogin:         to.Ptr(spec.AdminUser),
			AdministratorLoginPassword: to.Ptr(spec.AdminPassword),
			Version:                    to.Ptr("12.0"),
			MinimalTLSVersion:          to.Ptr("1.2"),
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating server")
	}

	sku := spec.SKU
	if sku == "" {
		sku = defaultSQLSKU
	}
	db := armsql.Database{
		Location: to.Ptr(env.cloud.Region),
		SKU:      &armsql.SKU{Name: to.Ptr(sku)},
	}
	if spec.MaxSizeGB > 0 {
		db.Properties = &armsql.DatabaseProperties{
			MaxSizeBytes: to.Ptr(int64(spec.MaxSizeGB) * 1024 * 1024 * 1024),
		}
	}
	if _, err := env.clients.SQL.CreateDatabase(ctx, group, spec.ServerName, spec.DatabaseName, db); err != nil {
		return nil, errors.Annotate(err, "creating database")
	}

	if spec.AllowAzureServices {
		// The 0.0.0.0-0.0.0.0 rule is the resource manager's idiom
		// for "allow Azure services", not a real address range.
		rule := armsql.FirewallRule{
			Properties: &armsql.ServerFirewallRuleProperties{
				StartIPAddress: to.Ptr("0.0.0.0"),
				EndIPAddress:   to.Ptr("0.0.0.0"),
			},
		}
		if err := env.clients.SQL.CreateFirewallRule(ctx, group, spec.ServerName, "AllowAllWindowsAzureIps", rule); err != nil {
			return nil, errors.Annotate(err, "creating firewall rule")
		}
	}

	result := &resources.Result{
		Endpoints:  map[string]string{},
		Keys:       map[string]string{},
		Attributes: map[string]string{"database": spec.DatabaseName, "sku": sku},
	}
	if server.Properties != nil && server.Properties.FullyQualifiedDomainName != nil {
		fqdn := *server.Properties.FullyQualifiedDomainName
		result.Endpoints["server"] = fqdn
		result.Keys["connection-string"] = fmt.Sprintf(
			"Server=tcp:%s,1433;Initial Catalog=%s;User ID=%s;Password=%s;Encrypt=True;",
			fqdn, spec.DatabaseName, spec.AdminUser, spec.AdminPassword,
		)
	}
	return result, nil
}
