package main

import (
	"fmt"

	"github.com/a-peyrard/propchain"
	"go.uber.org/dig"
)

const configuredUserName = "configuredUser"

type (
	User struct {
		Id   int64  `mapstructure:"id"`
		Name string `mapstructure:"name"`
	}

	MyUser struct {
		Name string
		Code string
	}

	// userBean is a User with the name it is registered under.
	userBean struct {
		Name string
		User *User
	}

	configuredUserOut struct {
		dig.Out

		User *User    `name:"configuredUser"`
		Bean userBean `group:"users"`
	}
)

func (u *User) String() string {
	return fmt.Sprintf("User{id=%d, name='%s'}", u.Id, u.Name)
}

func createUser() *User {
	return &User{Id: 1, Name: "小马哥"}
}

func (u *MyUser) String() string {
	return fmt.Sprintf("MyUser{name='%s', code='%s'}", u.Name, u.Code)
}

// newConfiguredUser binds the user.* properties of the chain.
func newConfiguredUser(chain *propchain.Chain) (configuredUserOut, error) {
	user, err := propchain.Bind[User](chain, "user")
	if err != nil {
		return configuredUserOut{}, fmt.Errorf("unable to create %s:\n\t%w", configuredUserName, err)
	}
	return configuredUserOut{
		User: user,
		Bean: userBean{Name: configuredUserName, User: user},
	}, nil
}
